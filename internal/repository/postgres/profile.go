package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/arogyacare/blood-api/internal/model"
	"github.com/arogyacare/blood-api/internal/repository"
)

type bloodProfileRepository struct {
	db *sqlx.DB
}

func NewBloodProfileRepository(db *sqlx.DB) repository.BloodProfileRepository {
	return &bloodProfileRepository{db: db}
}

func (r *bloodProfileRepository) Get(ctx context.Context, patientID uuid.UUID) (*model.PatientBloodProfile, error) {
	query := `
		SELECT patient_id, blood_group, donor_consent, updated_at
		FROM patient_blood_profiles
		WHERE patient_id = $1
	`
	var profile model.PatientBloodProfile
	err := r.db.GetContext(ctx, &profile, query, patientID)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blood profile: %w", err)
	}
	return &profile, nil
}

func (r *bloodProfileRepository) UpdateBloodGroup(ctx context.Context, patientID uuid.UUID, group model.BloodGroup) error {
	query := `
		INSERT INTO patient_blood_profiles (patient_id, blood_group, donor_consent, updated_at)
		VALUES ($1, $2, false, $3)
		ON CONFLICT (patient_id)
		DO UPDATE SET blood_group = EXCLUDED.blood_group, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, patientID, group, time.Now()); err != nil {
		return fmt.Errorf("failed to update blood group: %w", err)
	}
	return nil
}

func (r *bloodProfileRepository) UpdateConsent(ctx context.Context, patientID uuid.UUID, consent bool) error {
	query := `
		INSERT INTO patient_blood_profiles (patient_id, blood_group, donor_consent, updated_at)
		VALUES ($1, NULL, $2, $3)
		ON CONFLICT (patient_id)
		DO UPDATE SET donor_consent = EXCLUDED.donor_consent, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, patientID, consent, time.Now()); err != nil {
		return fmt.Errorf("failed to update donor consent: %w", err)
	}
	return nil
}
