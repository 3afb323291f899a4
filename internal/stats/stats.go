package stats

import (
	"net/http"

	"github.com/columbia-shop/columbia/backend/internal/httpjson"
	"github.com/columbia-shop/columbia/backend/internal/models"
)

// Snapshot is the fixed project metrics snapshot.
func Snapshot() models.ProjectStats {
	return models.ProjectStats{
		DaysLeft:             12,
		CompletionPercentage: 75,
		PendingApprovals:     3,
	}
}

func Status() models.Status {
	return models.Status{Active: true, Message: "Columbia API is running"}
}

// HandleStats serves GET /api/stats.
func HandleStats(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, Snapshot())
}

// HandleStatus serves GET /api/status.
func HandleStatus(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, Status())
}
