package models

import (
	"time"

	"github.com/google/uuid"
)

// GenerationRun is the metadata recorded for one generate call. Generated
// content is never stored.
type GenerationRun struct {
	ID             uuid.UUID   `json:"id"`
	Type           ContentType `json:"type"`
	Backend        string      `json:"backend"` // "server" | "device"
	Status         string      `json:"status"` // "completed" | "malformed" | "failed"
	FileCount      int         `json:"file_count"`
	DroppedFiles   int         `json:"dropped_files"`
	ItemCount      int         `json:"item_count"`
	ErrorCode      *string     `json:"error_code"`
	DurationMillis int64       `json:"duration_ms"`
	CreatedAt      time.Time   `json:"created_at"`
}

const (
	RunStatusCompleted = "completed"
	RunStatusMalformed = "malformed"
	RunStatusFailed    = "failed"
)

// WebSocket message types
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type StatusUpdate struct {
	RunID    uuid.UUID `json:"run_id"`
	Step     int       `json:"step"`
	StepName string    `json:"step_name"`
}

type CompletedEvent struct {
	RunID      uuid.UUID   `json:"run_id"`
	ResultType ContentType `json:"result_type"`
	ItemCount  int         `json:"item_count"`
	Malformed  bool        `json:"malformed"`
}

type ErrorEvent struct {
	RunID        uuid.UUID `json:"run_id"`
	ErrorCode    string    `json:"error_code"`
	ErrorMessage string    `json:"error_message"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
