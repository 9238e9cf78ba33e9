package events

import "time"

// Event defines the contract for all assistant events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "EMAIL_SENT").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type codes emitted by the assistant.
const (
	TypeEmailSent        = "EMAIL_SENT"
	TypeImageAnalyzed    = "IMAGE_ANALYZED"
	TypeDataAnalyzed     = "DATA_ANALYZED"
	TypeDocumentExported = "DOCUMENT_EXPORTED"
)

// BaseEvent is the common implementation used by the assistant services.
type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// EmailSent records a successful SMTP dispatch.
func EmailSent(sessionID, recipient, subject string) BaseEvent {
	return BaseEvent{
		Type: TypeEmailSent,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"recipient":  recipient,
			"subject":    subject,
		},
		OccurredAt: time.Now(),
	}
}

// ImageAnalyzed records a completed scan analysis.
func ImageAnalyzed(fingerprint, stage string, cached bool) BaseEvent {
	return BaseEvent{
		Type: TypeImageAnalyzed,
		Data: map[string]interface{}{
			"fingerprint": fingerprint,
			"stage":       stage,
			"cached":      cached,
		},
		OccurredAt: time.Now(),
	}
}

// DataAnalyzed records a completed tabular analysis.
func DataAnalyzed(sessionID string, records int, columns []string) BaseEvent {
	return BaseEvent{
		Type: TypeDataAnalyzed,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"records":    records,
			"columns":    columns,
		},
		OccurredAt: time.Now(),
	}
}

// DocumentExported records a generated report.
func DocumentExported(sessionID, filename string) BaseEvent {
	return BaseEvent{
		Type: TypeDocumentExported,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"filename":   filename,
		},
		OccurredAt: time.Now(),
	}
}
