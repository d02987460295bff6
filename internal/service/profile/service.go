package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/arogyacare/blood-api/internal/model"
	"github.com/arogyacare/blood-api/internal/repository"
	"github.com/arogyacare/blood-api/pkg/errors"
)

type BloodProfileService interface {
	Lookup(ctx context.Context, patientID uuid.UUID) (*model.PatientBloodProfile, error)
	SetBloodGroup(ctx context.Context, patientID uuid.UUID, group string) error
	SetDonorConsent(ctx context.Context, patientID uuid.UUID, consent bool) error
}

type Service struct {
	repo repository.BloodProfileRepository
}

func NewService(repo repository.BloodProfileRepository) *Service {
	return &Service{repo: repo}
}

// Lookup resolves a patient's stored blood group and consent flag. A
// profile with no blood group recorded is a successful lookup with a
// nil group, not a NotFound.
func (s *Service) Lookup(ctx context.Context, patientID uuid.UUID) (*model.PatientBloodProfile, error) {
	profile, err := s.repo.Get(ctx, patientID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errors.NotFound("patient blood profile")
		}
		return nil, errors.BackendUnavailable(err)
	}
	return profile, nil
}

// SetBloodGroup records the patient's blood group. Setting the same
// value twice is a no-op success.
func (s *Service) SetBloodGroup(ctx context.Context, patientID uuid.UUID, group string) error {
	g := model.BloodGroup(group)
	if !g.IsValid() {
		return errors.InvalidBloodGroup(group)
	}
	if err := s.repo.UpdateBloodGroup(ctx, patientID, g); err != nil {
		return errors.BackendUnavailable(err)
	}
	return nil
}

// SetDonorConsent toggles the donor-consent flag. It is independent of
// the blood group and never touches existing donor records.
func (s *Service) SetDonorConsent(ctx context.Context, patientID uuid.UUID, consent bool) error {
	if err := s.repo.UpdateConsent(ctx, patientID, consent); err != nil {
		return errors.BackendUnavailable(err)
	}
	return nil
}
