package models

// ProjectStats is the body of GET /api/stats.
type ProjectStats struct {
	DaysLeft             int `json:"days_left"`
	CompletionPercentage int `json:"completion_percentage"`
	PendingApprovals     int `json:"pending_approvals"`
}

// Status is the body of GET /api/status.
type Status struct {
	Active  bool   `json:"active"`
	Message string `json:"message"`
}
