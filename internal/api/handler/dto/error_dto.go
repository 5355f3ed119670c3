package dto

import "time"

// ErrorResponse is the single envelope every failure is reported with.
// For validation failures details maps field name to message, one entry
// per invalid field; for every other kind it holds a single entry keyed by
// the failure's cause description.
type ErrorResponse struct {
	Title     string            `json:"title"`
	Status    int               `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Exception string            `json:"exception"`
	Details   map[string]string `json:"details"`
}

type TokenRequest struct {
	Username string `json:"username"`
}
