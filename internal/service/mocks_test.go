package service_test

import (
	"context"

	"compass.app/intake/internal/model"
	"compass.app/intake/internal/queue"
	"compass.app/intake/internal/store"
)

type mockIntakeStore struct {
	createFn       func(ctx context.Context, record *model.IntakeRecord) error
	getByRefFn     func(ctx context.Context, referenceNumber string) (*model.IntakeRecord, error)
	listFn         func(ctx context.Context) ([]model.IntakeRecord, error)
	capturedRecord *model.IntakeRecord
	createCalls    int
}

func (m *mockIntakeStore) Create(ctx context.Context, record *model.IntakeRecord) error {
	m.createCalls++
	m.capturedRecord = record
	if m.createFn != nil {
		return m.createFn(ctx, record)
	}
	return nil
}

func (m *mockIntakeStore) GetByReferenceNumber(ctx context.Context, referenceNumber string) (*model.IntakeRecord, error) {
	if m.getByRefFn != nil {
		return m.getByRefFn(ctx, referenceNumber)
	}
	return nil, store.ErrNotFound
}

func (m *mockIntakeStore) List(ctx context.Context) ([]model.IntakeRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockDraftStore struct {
	saveFn         func(ctx context.Context, draft *model.Draft) error
	getBySessionFn func(ctx context.Context, sessionID string) (*model.Draft, error)
	deleteFn       func(ctx context.Context, sessionID string) error
	capturedDraft  *model.Draft
}

func (m *mockDraftStore) Save(ctx context.Context, draft *model.Draft) error {
	m.capturedDraft = draft
	if m.saveFn != nil {
		return m.saveFn(ctx, draft)
	}
	return nil
}

func (m *mockDraftStore) GetBySessionID(ctx context.Context, sessionID string) (*model.Draft, error) {
	if m.getBySessionFn != nil {
		return m.getBySessionFn(ctx, sessionID)
	}
	return nil, store.ErrNotFound
}

func (m *mockDraftStore) Delete(ctx context.Context, sessionID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, sessionID)
	}
	return nil
}

type mockProducer struct {
	publishFn     func(ctx context.Context, event model.RecordEvent) error
	capturedEvent *model.RecordEvent
	publishCalls  int
}

func (m *mockProducer) Publish(ctx context.Context, event model.RecordEvent) error {
	m.publishCalls++
	m.capturedEvent = &event
	if m.publishFn != nil {
		return m.publishFn(ctx, event)
	}
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}

var _ queue.Producer = (*mockProducer)(nil)
