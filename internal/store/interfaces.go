package store

import (
	"context"
	"errors"

	"compass.app/intake/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// IntakeStore defines the contract for intake record data access
type IntakeStore interface {
	Create(ctx context.Context, record *model.IntakeRecord) error
	GetByReferenceNumber(ctx context.Context, referenceNumber string) (*model.IntakeRecord, error)
	List(ctx context.Context) ([]model.IntakeRecord, error)
}

// DraftStore defines the contract for conversation draft data access
type DraftStore interface {
	Save(ctx context.Context, draft *model.Draft) error
	GetBySessionID(ctx context.Context, sessionID string) (*model.Draft, error)
	Delete(ctx context.Context, sessionID string) error
}
