package models

import "time"

// LoginRequest is the JSON body for POST /api/login.
type LoginRequest struct {
	Username *string `json:"username"`
}

// LoginResponse is returned by POST /api/login.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginAttempt is a single audit record stored in MongoDB.
type LoginAttempt struct {
	Username   string    `json:"username"    bson:"username"`
	Success    bool      `json:"success"     bson:"success"`
	RemoteAddr string    `json:"remote_addr" bson:"remote_addr"`
	CreatedAt  time.Time `json:"created_at"  bson:"created_at"`
}
