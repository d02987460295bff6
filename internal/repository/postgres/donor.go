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

type donorRepository struct {
	db *sqlx.DB
}

func NewDonorRepository(db *sqlx.DB) repository.DonorRepository {
	return &donorRepository{db: db}
}

func (r *donorRepository) Create(ctx context.Context, donor *model.DonorRecord) error {
	query := `
		INSERT INTO donors (
			id, name, kind, blood_group, phone, address, city, state, pincode,
			is_available, consent_given, last_donation_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	donor.CreatedAt = time.Now()
	donor.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		donor.ID,
		donor.Name,
		donor.Kind,
		donor.BloodGroup,
		donor.Phone,
		donor.Address,
		donor.City,
		donor.State,
		donor.Pincode,
		donor.IsAvailable,
		donor.ConsentGiven,
		donor.LastDonationDate,
		donor.CreatedAt,
		donor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create donor: %w", err)
	}
	return nil
}

func (r *donorRepository) Get(ctx context.Context, id uuid.UUID) (*model.DonorRecord, error) {
	query := `SELECT * FROM donors WHERE id = $1`
	var donor model.DonorRecord
	err := r.db.GetContext(ctx, &donor, query, id)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get donor: %w", err)
	}
	return &donor, nil
}

func (r *donorRepository) ListAvailable(ctx context.Context) ([]*model.DonorRecord, error) {
	query := `
		SELECT * FROM donors
		WHERE is_available = true AND consent_given = true
		ORDER BY created_at DESC
	`
	var donors []*model.DonorRecord
	if err := r.db.SelectContext(ctx, &donors, query); err != nil {
		return nil, fmt.Errorf("failed to list donors: %w", err)
	}
	return donors, nil
}

func (r *donorRepository) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	query := `UPDATE donors SET is_available = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, available, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update donor availability: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update donor availability: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
