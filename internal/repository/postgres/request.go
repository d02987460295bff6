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

type bloodRequestRepository struct {
	db *sqlx.DB
}

func NewBloodRequestRepository(db *sqlx.DB) repository.BloodRequestRepository {
	return &bloodRequestRepository{db: db}
}

func (r *bloodRequestRepository) Create(ctx context.Context, request *model.BloodRequest) error {
	query := `
		INSERT INTO blood_requests (
			id, blood_group, units_needed, urgency, patient_id, hospital_name,
			contact_person, contact_phone, address, city, state, pincode,
			notes, status, requested_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		request.ID,
		request.BloodGroup,
		request.UnitsNeeded,
		request.Urgency,
		request.PatientID,
		request.HospitalName,
		request.ContactPerson,
		request.ContactPhone,
		request.Address,
		request.City,
		request.State,
		request.Pincode,
		request.Notes,
		request.Status,
		request.RequestedBy,
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create blood request: %w", err)
	}
	return nil
}

func (r *bloodRequestRepository) Get(ctx context.Context, id uuid.UUID) (*model.BloodRequest, error) {
	query := `SELECT * FROM blood_requests WHERE id = $1`
	var request model.BloodRequest
	err := r.db.GetContext(ctx, &request, query, id)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blood request: %w", err)
	}
	return &request, nil
}

func (r *bloodRequestRepository) ListActive(ctx context.Context) ([]*model.BloodRequest, error) {
	query := `
		SELECT * FROM blood_requests
		WHERE status = 'active'
		ORDER BY created_at DESC
	`
	var requests []*model.BloodRequest
	if err := r.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, fmt.Errorf("failed to list blood requests: %w", err)
	}
	return requests, nil
}
