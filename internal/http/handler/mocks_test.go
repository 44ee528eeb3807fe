package handler_test

import (
	"context"
	"encoding/json"

	"compass.app/intake/internal/model"
	"compass.app/intake/internal/service"
)

type mockIntakeService struct {
	submitFn   func(ctx context.Context, params service.SubmitParams) (*service.SubmitResult, error)
	listFn     func(ctx context.Context) ([]model.IntakeRecord, error)
	getByRefFn func(ctx context.Context, referenceNumber string) (*model.IntakeRecord, error)
	saveFn     func(ctx context.Context, sessionID string, state json.RawMessage) error
	getDraftFn func(ctx context.Context, sessionID string) (*model.Draft, error)
	deleteFn   func(ctx context.Context, sessionID string) error

	capturedParams service.SubmitParams
}

func (m *mockIntakeService) Submit(ctx context.Context, params service.SubmitParams) (*service.SubmitResult, error) {
	m.capturedParams = params
	if m.submitFn != nil {
		return m.submitFn(ctx, params)
	}
	return &service.SubmitResult{}, nil
}

func (m *mockIntakeService) List(ctx context.Context) ([]model.IntakeRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockIntakeService) GetByReferenceNumber(ctx context.Context, referenceNumber string) (*model.IntakeRecord, error) {
	if m.getByRefFn != nil {
		return m.getByRefFn(ctx, referenceNumber)
	}
	return nil, nil
}

func (m *mockIntakeService) SaveDraft(ctx context.Context, sessionID string, state json.RawMessage) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, sessionID, state)
	}
	return nil
}

func (m *mockIntakeService) GetDraft(ctx context.Context, sessionID string) (*model.Draft, error) {
	if m.getDraftFn != nil {
		return m.getDraftFn(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockIntakeService) DeleteDraft(ctx context.Context, sessionID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, sessionID)
	}
	return nil
}

type mockPinger struct {
	pingFn func(ctx context.Context) error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}
