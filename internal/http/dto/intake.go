package dto

import (
	"encoding/json"
	"time"

	"compass.app/intake/internal/model"
)

type SubmitIntakeRequest struct {
	CustomerProblem   string `json:"customerProblem"`
	FeatureType       string `json:"featureType,omitempty"`
	EnhancingFeature  string `json:"enhancingFeature,omitempty"`
	Service           string `json:"service,omitempty"`
	Stakeholder       string `json:"stakeholder,omitempty"`
	AdditionalContext string `json:"additionalContext,omitempty"`
	SubmittedBy       string `json:"submittedBy,omitempty"`

	// Accepted from the chat client but not persisted.
	Timeline      string `json:"timeline,omitempty"`
	HasResearch   string `json:"hasResearch,omitempty"`
	ResearchLinks string `json:"researchLinks,omitempty"`
}

type SubmitIntakeResponse struct {
	Success         bool      `json:"success"`
	ReferenceNumber string    `json:"referenceNumber"`
	SubmittedAt     time.Time `json:"submittedAt"`
}

type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error,omitempty"`
	Errors  []FieldErrorResponse `json:"errors,omitempty"`
}

type ServiceEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListServicesResponse struct {
	Success  bool           `json:"success"`
	Services []ServiceEntry `json:"services"`
}

type ListIntakesResponse struct {
	Success bool                 `json:"success"`
	Items   []model.IntakeRecord `json:"items"`
}

type GetIntakeResponse struct {
	Success bool               `json:"success"`
	Item    model.IntakeRecord `json:"item"`
}

type SaveDraftRequest struct {
	SessionID string          `json:"sessionId" binding:"required"`
	State     json.RawMessage `json:"state" binding:"required"`
}

type SaveDraftResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
}

type GetDraftResponse struct {
	Success   bool            `json:"success"`
	SessionID string          `json:"sessionId"`
	State     json.RawMessage `json:"state"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Region  string `json:"region"`
}
