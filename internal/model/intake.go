package model

import "time"

type Status string

type FeatureType string

const (
	StatusSubmitted Status = "SUBMITTED"
)

const (
	FeatureTypeNew         FeatureType = "new"
	FeatureTypeEnhancement FeatureType = "enhancement"
	// FeatureTypeNotSure is the sentinel stored when the submitter skipped the
	// question. Kept uppercase to match records written by earlier versions.
	FeatureTypeNotSure FeatureType = "NOT_SURE"
)

const (
	// MetadataSortKey is the fixed sort key for intake record items.
	MetadataSortKey = "METADATA"

	intakeKeyPrefix = "INTAKE#"
)

// IntakeRecord is a single submitted UX intake request. Records are keyed by
// a composite (PK, SK) pair where PK embeds the reference number, an
// inherited access pattern preserved for compatibility with existing data.
type IntakeRecord struct {
	PK              string    `json:"pk"`
	SK              string    `json:"sk"`
	ID              string    `json:"id"`
	ReferenceNumber string    `json:"referenceNumber"`
	SubmittedAt     time.Time `json:"submittedAt"`
	Status          Status    `json:"status"`

	CustomerProblem   string      `json:"customerProblem"`
	FeatureType       FeatureType `json:"featureType"`
	EnhancingFeature  *string     `json:"enhancingFeature,omitempty"`
	Service           string      `json:"service"`
	Stakeholder       string      `json:"stakeholder"`
	AdditionalContext *string     `json:"additionalContext,omitempty"`
	SubmittedBy       *string     `json:"submittedBy,omitempty"`
}

// IntakeKey builds the partition key for a reference number.
func IntakeKey(referenceNumber string) string {
	return intakeKeyPrefix + referenceNumber
}
