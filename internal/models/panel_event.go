package models

import "time"

// Event types recorded in the panel event log.
const (
	EventReading        = "READING"
	EventHeatStatus     = "HEAT_STATUS"
	EventTargetChange   = "TARGET_CHANGE"
	EventTargetPushed   = "TARGET_PUSHED"
	EventIntervalPushed = "INTERVAL_PUSHED"
	EventRejected       = "REJECTED"
	EventError          = "ERROR"
)

// PanelEvent is a single log entry.
type PanelEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // READING | HEAT_STATUS | TARGET_CHANGE | TARGET_PUSHED | INTERVAL_PUSHED | REJECTED | ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
