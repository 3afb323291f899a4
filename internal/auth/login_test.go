package auth

import (
	"strings"
	"testing"
)

func TestEvaluator_AllowListSucceeds(t *testing.T) {
	e := NewEvaluator(AllowList)
	for _, u := range AllowList {
		res := e.Evaluate(u)
		if !res.Success {
			t.Fatalf("expected %q to succeed", u)
		}
		if !strings.Contains(res.Message, u) {
			t.Fatalf("expected message to contain %q, got %q", u, res.Message)
		}
	}
}

func TestEvaluator_OthersFail(t *testing.T) {
	e := NewEvaluator(AllowList)
	for _, u := range []string{"", "Admin", "admin ", " admin", "root", "columbia", "columbia_user2"} {
		res := e.Evaluate(u)
		if res.Success {
			t.Fatalf("expected %q to be rejected", u)
		}
		if res.Message != RejectedMessage {
			t.Fatalf("unexpected rejection message %q", res.Message)
		}
	}
}

func TestEvaluator_Example(t *testing.T) {
	res := NewEvaluator(AllowList).Evaluate("admin")
	if res.Message != "Welcome back, admin!" {
		t.Fatalf("unexpected message %q", res.Message)
	}
}
