package model

import (
	"encoding/json"
	"time"
)

const (
	// DraftSortKey is the fixed sort key for conversation draft items.
	DraftSortKey = "STATE"

	draftKeyPrefix = "DRAFT#"
)

// Draft is a saved snapshot of an in-progress intake conversation. The state
// payload is the serialized conversation state, opaque to the store so the
// conversation engine can evolve its shape independently.
type Draft struct {
	PK        string          `json:"pk"`
	SK        string          `json:"sk"`
	SessionID string          `json:"sessionId"`
	State     json.RawMessage `json:"state"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// DraftKey builds the partition key for a conversation session.
func DraftKey(sessionID string) string {
	return draftKeyPrefix + sessionID
}
