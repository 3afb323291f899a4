package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/columbia-shop/columbia/backend/internal/httpjson"
	"github.com/columbia-shop/columbia/backend/internal/metrics"
	"github.com/columbia-shop/columbia/backend/internal/models"
)

// AuditStore defines the interface for recording login attempts.
type AuditStore interface {
	RecordLogin(ctx context.Context, attempt models.LoginAttempt) error
}

// Handler holds the login HTTP handler.
type Handler struct {
	evaluator *Evaluator
	audit     AuditStore
	log       *slog.Logger
}

// NewHandler builds a Handler. audit may be nil.
func NewHandler(evaluator *Evaluator, audit AuditStore, log *slog.Logger) *Handler {
	return &Handler{evaluator: evaluator, audit: audit, log: log}
}

// Login evaluates the submitted username. Rejections are still 200 with success=false.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == nil {
		httpjson.Fail(w, http.StatusBadRequest, "missing required fields: username")
		return
	}

	username := *req.Username
	res := h.evaluator.Evaluate(username)

	outcome := "rejected"
	if res.Success {
		outcome = "accepted"
	}
	metrics.LoginAttempts.WithLabelValues(outcome).Inc()
	h.log.Info("auth.login_attempt", "username", username, "outcome", outcome)

	if h.audit != nil {
		attempt := models.LoginAttempt{
			Username:   username,
			Success:    res.Success,
			RemoteAddr: r.RemoteAddr,
			CreatedAt:  time.Now().UTC(),
		}
		if err := h.audit.RecordLogin(r.Context(), attempt); err != nil {
			h.log.Warn("auth.audit_failed", "error", err)
		}
	}

	httpjson.Write(w, http.StatusOK, res)
}
