package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"compass.app/intake/core/db"
	"compass.app/intake/internal/model"
)

type intakeStore struct {
	db *db.DB
}

func newIntakeStore(db *db.DB) IntakeStore {
	return &intakeStore{db: db}
}

const intakeColumns = `pk, sk, id, reference_number, submitted_at, status,
	customer_problem, feature_type, enhancing_feature, service, stakeholder,
	additional_context, submitted_by`

func (s *intakeStore) Create(ctx context.Context, record *model.IntakeRecord) error {
	query := `
		INSERT INTO intake_records (` + intakeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := s.db.Pool().Exec(ctx, query,
		record.PK,
		record.SK,
		record.ID,
		record.ReferenceNumber,
		record.SubmittedAt,
		string(record.Status),
		record.CustomerProblem,
		string(record.FeatureType),
		record.EnhancingFeature,
		record.Service,
		record.Stakeholder,
		record.AdditionalContext,
		record.SubmittedBy,
	)
	if err != nil {
		return fmt.Errorf("inserting intake record: %w", err)
	}
	return nil
}

func (s *intakeStore) GetByReferenceNumber(ctx context.Context, referenceNumber string) (*model.IntakeRecord, error) {
	query := `
		SELECT ` + intakeColumns + `
		FROM intake_records
		WHERE pk = $1 AND sk = $2`

	row := s.db.Pool().QueryRow(ctx, query, model.IntakeKey(referenceNumber), model.MetadataSortKey)

	record, err := scanIntakeRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

func (s *intakeStore) List(ctx context.Context) ([]model.IntakeRecord, error) {
	query := `
		SELECT ` + intakeColumns + `
		FROM intake_records
		WHERE sk = $1
		ORDER BY submitted_at DESC`

	rows, err := s.db.Pool().Query(ctx, query, model.MetadataSortKey)
	if err != nil {
		return nil, fmt.Errorf("listing intake records: %w", err)
	}
	defer rows.Close()

	var records []model.IntakeRecord
	for rows.Next() {
		record, err := scanIntakeRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func scanIntakeRecord(row pgx.Row) (*model.IntakeRecord, error) {
	var (
		record      model.IntakeRecord
		status      string
		featureType string
	)

	err := row.Scan(
		&record.PK,
		&record.SK,
		&record.ID,
		&record.ReferenceNumber,
		&record.SubmittedAt,
		&status,
		&record.CustomerProblem,
		&featureType,
		&record.EnhancingFeature,
		&record.Service,
		&record.Stakeholder,
		&record.AdditionalContext,
		&record.SubmittedBy,
	)
	if err != nil {
		return nil, err
	}

	record.Status = model.Status(status)
	record.FeatureType = model.FeatureType(featureType)
	return &record, nil
}
