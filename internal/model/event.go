package model

type EventType string

const (
	// EventTypeInsert is emitted once per newly persisted intake record.
	// Other event types may appear on the feed; consumers ignore them.
	EventTypeInsert EventType = "INSERT"
)

// RecordEvent is one change feed entry. It carries the full image of the
// record at write time so consumers never have to read back from the store.
type RecordEvent struct {
	EventType EventType    `json:"event_type"`
	Record    IntakeRecord `json:"record"`

	// TraceID propagates the submitting request's trace across the feed.
	TraceID string `json:"trace_id,omitempty"`
}
