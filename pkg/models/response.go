package models

import "time"

// Envelope is the JSON success response for a job search. Count always
// equals len(Jobs); Sites echoes every originally requested source, whether
// or not it ultimately produced results.
type Envelope struct {
	Jobs  []JobRecord    `json:"jobs"`
	Count int            `json:"count"`
	Sites []SourceID     `json:"sites"`
	Query map[string]any `json:"query"`
}

// ErrorResponse is the wire shape of validation and upstream failures.
type ErrorResponse struct {
	Error      string         `json:"error"`
	ErrorType  string         `json:"error_type"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// HealthResponse represents the health check response. Uptime is rendered
// as a human-readable duration string.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
}
