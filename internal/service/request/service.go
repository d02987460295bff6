package request

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/arogyacare/blood-api/internal/bloodmatch"
	"github.com/arogyacare/blood-api/internal/model"
	"github.com/arogyacare/blood-api/internal/repository"
	"github.com/arogyacare/blood-api/pkg/errors"
	"github.com/arogyacare/blood-api/pkg/logger"
)

type BloodRequestService interface {
	SubmitRequest(ctx context.Context, req *model.CreateBloodRequestRequest, requestedBy uuid.UUID) (*model.BloodRequest, error)
	ListActive(ctx context.Context) ([]*model.BloodRequest, error)
}

type Service struct {
	repo       repository.BloodRequestRepository
	outboxRepo repository.OutboxRepository
	logger     *logger.Logger
}

func NewService(repo repository.BloodRequestRepository, outboxRepo repository.OutboxRepository, logger *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		outboxRepo: outboxRepo,
		logger:     logger,
	}
}

// SubmitRequest validates and persists a new blood request. Validation
// failures are reported before any persistence call is attempted.
func (s *Service) SubmitRequest(ctx context.Context, req *model.CreateBloodRequestRequest, requestedBy uuid.UUID) (*model.BloodRequest, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	units := req.UnitsNeeded
	if units <= 0 {
		units = 1
	}
	urgency := model.RequestUrgency(req.Urgency)
	if urgency == "" {
		urgency = model.UrgencyHigh
	}

	var patientID uuid.UUID
	if req.PatientID != "" {
		id, err := uuid.Parse(req.PatientID)
		if err != nil {
			return nil, &errors.AppError{
				Kind:    errors.KindMissingRequiredField,
				Message: "patient_id must be a valid UUID",
			}
		}
		patientID = id
	}

	request := &model.BloodRequest{
		Base: model.Base{
			ID: uuid.New(),
		},
		BloodGroup:    model.BloodGroup(req.BloodGroup),
		UnitsNeeded:   units,
		Urgency:       urgency,
		PatientID:     patientID,
		HospitalName:  req.HospitalName,
		ContactPerson: req.ContactPerson,
		ContactPhone:  req.ContactPhone,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Pincode:       req.Pincode,
		Notes:         req.Notes,
		Status:        model.RequestStatusActive,
		RequestedBy:   requestedBy,
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, errors.BackendUnavailable(err)
	}

	s.emitEvent(ctx, model.EventBloodRequestCreated, request)

	return request, nil
}

// ListActive returns open requests, newest first. The status filter is
// re-applied on top of the fetch in case the read path ever widens.
func (s *Service) ListActive(ctx context.Context) ([]*model.BloodRequest, error) {
	requests, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, errors.BackendUnavailable(err)
	}
	return bloodmatch.ActiveRequests(requests), nil
}

func (s *Service) emitEvent(ctx context.Context, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error(err, "failed to marshal event payload", "event_type", eventType)
		return
	}
	if err := s.outboxRepo.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   data,
	}); err != nil {
		s.logger.Error(err, "failed to create outbox event", "event_type", eventType)
	}
}

func validateSubmission(req *model.CreateBloodRequestRequest) error {
	if strings.TrimSpace(req.BloodGroup) == "" {
		return errors.MissingRequiredField("blood_group")
	}
	if !model.BloodGroup(req.BloodGroup).IsValid() {
		return errors.InvalidBloodGroup(req.BloodGroup)
	}
	if strings.TrimSpace(req.ContactPerson) == "" {
		return errors.MissingRequiredField("contact_person")
	}
	if strings.TrimSpace(req.ContactPhone) == "" {
		return errors.MissingRequiredField("contact_phone")
	}
	if strings.TrimSpace(req.Address) == "" {
		return errors.MissingRequiredField("address")
	}
	return nil
}
