package auth

import (
	"fmt"

	"github.com/columbia-shop/columbia/backend/internal/models"
)

// RejectedMessage is returned for any username outside the allow-list.
const RejectedMessage = "Invalid username"

// AllowList is the fixed set of usernames that log in successfully.
// This is a username gate only; no credential is checked.
var AllowList = []string{"admin", "columbia_user"}

// Evaluator decides login outcomes against an allow-list.
type Evaluator struct {
	allowed map[string]struct{}
}

func NewEvaluator(usernames []string) *Evaluator {
	allowed := make(map[string]struct{}, len(usernames))
	for _, u := range usernames {
		allowed[u] = struct{}{}
	}
	return &Evaluator{allowed: allowed}
}

// Evaluate matches username exactly (case-sensitive, no trimming).
func (e *Evaluator) Evaluate(username string) models.LoginResponse {
	if _, ok := e.allowed[username]; ok {
		return models.LoginResponse{Success: true, Message: fmt.Sprintf("Welcome back, %s!", username)}
	}
	return models.LoginResponse{Success: false, Message: RejectedMessage}
}
