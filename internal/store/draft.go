package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"compass.app/intake/core/db"
	"compass.app/intake/internal/model"
)

type draftStore struct {
	db *db.DB
}

func newDraftStore(db *db.DB) DraftStore {
	return &draftStore{db: db}
}

func (s *draftStore) Save(ctx context.Context, draft *model.Draft) error {
	query := `
		INSERT INTO drafts (pk, sk, session_id, state, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (pk, sk) DO UPDATE
		SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`

	_, err := s.db.Pool().Exec(ctx, query,
		draft.PK,
		draft.SK,
		draft.SessionID,
		draft.State,
		draft.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

func (s *draftStore) GetBySessionID(ctx context.Context, sessionID string) (*model.Draft, error) {
	query := `
		SELECT pk, sk, session_id, state, updated_at
		FROM drafts
		WHERE pk = $1 AND sk = $2`

	var draft model.Draft
	err := s.db.Pool().QueryRow(ctx, query, model.DraftKey(sessionID), model.DraftSortKey).Scan(
		&draft.PK,
		&draft.SK,
		&draft.SessionID,
		&draft.State,
		&draft.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &draft, nil
}

func (s *draftStore) Delete(ctx context.Context, sessionID string) error {
	query := `DELETE FROM drafts WHERE pk = $1 AND sk = $2`

	_, err := s.db.Pool().Exec(ctx, query, model.DraftKey(sessionID), model.DraftSortKey)
	if err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}
