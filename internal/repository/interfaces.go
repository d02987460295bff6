package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/arogyacare/blood-api/internal/model"
)

// All repository interfaces in one file
type (
	// DonorRepository handles donor directory persistence.
	DonorRepository interface {
		Create(ctx context.Context, donor *model.DonorRecord) error
		Get(ctx context.Context, id uuid.UUID) (*model.DonorRecord, error)
		// ListAvailable returns donors with is_available and consent_given
		// set, newest registration first.
		ListAvailable(ctx context.Context) ([]*model.DonorRecord, error)
		SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
	}

	// BloodRequestRepository handles blood request persistence.
	BloodRequestRepository interface {
		Create(ctx context.Context, request *model.BloodRequest) error
		Get(ctx context.Context, id uuid.UUID) (*model.BloodRequest, error)
		// ListActive returns requests with status='active', newest first.
		ListActive(ctx context.Context) ([]*model.BloodRequest, error)
	}

	// BloodProfileRepository handles patient blood profiles.
	BloodProfileRepository interface {
		Get(ctx context.Context, patientID uuid.UUID) (*model.PatientBloodProfile, error)
		UpdateBloodGroup(ctx context.Context, patientID uuid.UUID, group model.BloodGroup) error
		UpdateConsent(ctx context.Context, patientID uuid.UUID, consent bool) error
	}

	// OutboxRepository handles the transactional outbox.
	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
	}
)

// ErrNotFound is returned by Get operations when no row matches. It is
// distinct from a profile that exists with no blood group recorded.
var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "record not found" }
