package store

import (
	"compass.app/intake/core/db"
)

type Stores struct {
	db *db.DB
}

func NewStores(db *db.DB) *Stores {
	return &Stores{db: db}
}

func (s *Stores) Intakes() IntakeStore {
	return newIntakeStore(s.db)
}

func (s *Stores) Drafts() DraftStore {
	return newDraftStore(s.db)
}
