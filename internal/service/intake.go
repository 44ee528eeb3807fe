package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"compass.app/intake/common"
	"compass.app/intake/common/logger"
	"compass.app/intake/common/refnum"
	"compass.app/intake/internal/model"
	"compass.app/intake/internal/queue"
	"compass.app/intake/internal/store"
)

// ErrValidation wraps field-level validation failures so handlers can map
// them to 400 responses.
var ErrValidation = errors.New("validation failed")

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries all field errors from a rejected submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// SubmitParams is the raw submission payload. Timeline, HasResearch, and
// ResearchLinks are accepted for compatibility with the chat client but are
// not persisted; the record schema never carried them.
type SubmitParams struct {
	CustomerProblem   string `json:"customerProblem"`
	FeatureType       string `json:"featureType"`
	EnhancingFeature  string `json:"enhancingFeature"`
	Service           string `json:"service"`
	Stakeholder       string `json:"stakeholder"`
	AdditionalContext string `json:"additionalContext"`
	SubmittedBy       string `json:"submittedBy"`

	Timeline      string `json:"timeline"`
	HasResearch   string `json:"hasResearch"`
	ResearchLinks string `json:"researchLinks"`
}

// SubmitResult is returned on a successful submission.
type SubmitResult struct {
	ReferenceNumber string
	SubmittedAt     time.Time
}

type IntakeService interface {
	Submit(ctx context.Context, params SubmitParams) (*SubmitResult, error)
	List(ctx context.Context) ([]model.IntakeRecord, error)
	GetByReferenceNumber(ctx context.Context, referenceNumber string) (*model.IntakeRecord, error)
	SaveDraft(ctx context.Context, sessionID string, state json.RawMessage) error
	GetDraft(ctx context.Context, sessionID string) (*model.Draft, error)
	DeleteDraft(ctx context.Context, sessionID string) error
}

type intakeService struct {
	intakes store.IntakeStore
	drafts  store.DraftStore
	feed    queue.Producer
	logger  *slog.Logger
	now     func() time.Time
}

func NewIntakeService(intakes store.IntakeStore, drafts store.DraftStore, feed queue.Producer, log *slog.Logger) IntakeService {
	if log == nil {
		log = slog.Default()
	}
	return &intakeService{
		intakes: intakes,
		drafts:  drafts,
		feed:    feed,
		logger:  log,
		now:     time.Now,
	}
}

// MinProblemLength is the minimum accepted customerProblem length in
// characters, counted after trimming.
const MinProblemLength = 50

// Submit validates, sanitizes, and persists one intake request, then emits
// an INSERT event on the change feed. Feed publish failures are logged and
// swallowed; notification delivery is best-effort and must never fail a
// submission that already persisted.
func (s *intakeService) Submit(ctx context.Context, params SubmitParams) (*SubmitResult, error) {
	var fieldErrs []FieldError
	if utf8.RuneCountInString(strings.TrimSpace(params.CustomerProblem)) < MinProblemLength {
		fieldErrs = append(fieldErrs, FieldError{Field: "customerProblem", Message: "Min 50 chars"})
	}

	featureType := model.FeatureType(params.FeatureType)
	if featureType == "" {
		featureType = model.FeatureTypeNotSure
	}
	if featureType == model.FeatureTypeEnhancement && common.SanitizeText(params.EnhancingFeature) == "" {
		fieldErrs = append(fieldErrs, FieldError{Field: "enhancingFeature", Message: "Required for enhancements"})
	}

	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	referenceNumber := refnum.New(s.now())
	now := s.now().UTC()

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		ReferenceNumber: logger.Ptr(referenceNumber),
		Component:       "intake.service",
	})

	stakeholder := common.SanitizeText(params.Stakeholder)
	if stakeholder == "" {
		stakeholder = "Not specified"
	}

	record := &model.IntakeRecord{
		PK:              model.IntakeKey(referenceNumber),
		SK:              model.MetadataSortKey,
		ID:              uuid.NewString(),
		ReferenceNumber: referenceNumber,
		SubmittedAt:     now,
		Status:          model.StatusSubmitted,

		CustomerProblem:   common.SanitizeText(params.CustomerProblem),
		FeatureType:       featureType,
		EnhancingFeature:  common.SanitizeTextPtr(optional(params.EnhancingFeature)),
		Service:           common.SanitizeText(params.Service),
		Stakeholder:       stakeholder,
		AdditionalContext: common.SanitizeTextPtr(optional(params.AdditionalContext)),
		SubmittedBy:       optional(strings.TrimSpace(params.SubmittedBy)),
	}

	if err := s.intakes.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("persisting intake record: %w", err)
	}

	event := model.RecordEvent{
		EventType: model.EventTypeInsert,
		Record:    *record,
	}
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		event.TraceID = span.SpanContext().TraceID().String()
	}

	if err := s.feed.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish record event", "error", err)
	}

	s.logger.InfoContext(ctx, "intake submitted",
		"service", record.Service,
		"problem_preview", logger.Truncate(record.CustomerProblem, 80))

	return &SubmitResult{
		ReferenceNumber: referenceNumber,
		SubmittedAt:     now,
	}, nil
}

func (s *intakeService) List(ctx context.Context) ([]model.IntakeRecord, error) {
	records, err := s.intakes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing intake records: %w", err)
	}
	return records, nil
}

func (s *intakeService) GetByReferenceNumber(ctx context.Context, referenceNumber string) (*model.IntakeRecord, error) {
	record, err := s.intakes.GetByReferenceNumber(ctx, referenceNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetching intake record: %w", err)
	}
	return record, nil
}

func (s *intakeService) SaveDraft(ctx context.Context, sessionID string, state json.RawMessage) error {
	if strings.TrimSpace(sessionID) == "" {
		return &ValidationError{Fields: []FieldError{
			{Field: "sessionId", Message: "Required"},
		}}
	}
	if !json.Valid(state) {
		return &ValidationError{Fields: []FieldError{
			{Field: "state", Message: "Must be valid JSON"},
		}}
	}

	draft := &model.Draft{
		PK:        model.DraftKey(sessionID),
		SK:        model.DraftSortKey,
		SessionID: sessionID,
		State:     state,
		UpdatedAt: s.now().UTC(),
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		SessionID: logger.Ptr(sessionID),
		Component: "intake.service",
	})

	if err := s.drafts.Save(ctx, draft); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}

	s.logger.DebugContext(ctx, "draft saved")
	return nil
}

// DeleteDraft removes a saved conversation state. Deleting a draft that
// does not exist is not an error.
func (s *intakeService) DeleteDraft(ctx context.Context, sessionID string) error {
	if err := s.drafts.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}

func (s *intakeService) GetDraft(ctx context.Context, sessionID string) (*model.Draft, error) {
	draft, err := s.drafts.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fetching draft: %w", err)
	}
	return draft, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
