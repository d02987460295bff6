package donor

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/arogyacare/blood-api/internal/bloodmatch"
	"github.com/arogyacare/blood-api/internal/model"
	"github.com/arogyacare/blood-api/internal/repository"
	"github.com/arogyacare/blood-api/pkg/errors"
	"github.com/arogyacare/blood-api/pkg/logger"
	"github.com/arogyacare/blood-api/pkg/metrics"
)

const donorListCacheKey = "donors:available"

type DonorService interface {
	RegisterDonor(ctx context.Context, req *model.RegisterDonorRequest) (*model.DonorRecord, error)
	FindCompatibleDonors(ctx context.Context, recipient *model.BloodGroup) ([]*model.DonorRecord, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
}

type Service struct {
	repo       repository.DonorRepository
	outboxRepo repository.OutboxRepository
	cache      *gocache.Cache
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

func NewService(
	repo repository.DonorRepository,
	outboxRepo repository.OutboxRepository,
	cacheTTL time.Duration,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &Service{
		repo:       repo,
		outboxRepo: outboxRepo,
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
		logger:     logger,
		metrics:    metrics,
	}
}

func (s *Service) RegisterDonor(ctx context.Context, req *model.RegisterDonorRequest) (*model.DonorRecord, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	kind := model.DonorKind(req.Kind)
	if kind == "" {
		kind = model.DonorKindIndividual
	}

	donor := &model.DonorRecord{
		Base: model.Base{
			ID: uuid.New(),
		},
		Name:             strings.TrimSpace(req.Name),
		Kind:             kind,
		BloodGroup:       model.BloodGroup(req.BloodGroup),
		Phone:            req.Phone,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		Pincode:          req.Pincode,
		IsAvailable:      true,
		ConsentGiven:     true,
		LastDonationDate: req.LastDonationDate,
	}

	if err := s.repo.Create(ctx, donor); err != nil {
		return nil, errors.BackendUnavailable(err)
	}

	s.cache.Delete(donorListCacheKey)
	s.emitEvent(ctx, model.EventDonorRegistered, donor)

	return donor, nil
}

// FindCompatibleDonors fetches the available donor list and filters it
// down to the groups compatible with the recipient. A nil recipient
// returns every available donor.
func (s *Service) FindCompatibleDonors(ctx context.Context, recipient *model.BloodGroup) ([]*model.DonorRecord, error) {
	donors, err := s.availableDonors(ctx)
	if err != nil {
		return nil, err
	}

	matched := bloodmatch.FindCompatibleDonors(recipient, donors)

	if recipient != nil {
		s.metrics.DonorMatchesComputed.WithLabelValues(recipient.String()).Inc()
		s.metrics.DonorsReturned.Observe(float64(len(matched)))
	}

	return matched, nil
}

func (s *Service) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	if err := s.repo.SetAvailability(ctx, id, available); err != nil {
		if err == repository.ErrNotFound {
			return errors.NotFound("donor")
		}
		return errors.BackendUnavailable(err)
	}
	s.cache.Delete(donorListCacheKey)
	return nil
}

// availableDonors serves the donor list from a short-lived cache so a
// burst of match lookups does not hammer the directory table.
func (s *Service) availableDonors(ctx context.Context) ([]*model.DonorRecord, error) {
	if cached, ok := s.cache.Get(donorListCacheKey); ok {
		return cached.([]*model.DonorRecord), nil
	}

	donors, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, errors.BackendUnavailable(err)
	}

	s.cache.SetDefault(donorListCacheKey, donors)
	return donors, nil
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

func validateRegistration(req *model.RegisterDonorRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.MissingRequiredField("name")
	}
	if strings.TrimSpace(req.Address) == "" {
		return errors.MissingRequiredField("address")
	}
	if !req.ConsentGiven {
		return errors.MissingRequiredField("consent_given")
	}
	if !model.BloodGroup(req.BloodGroup).IsValid() {
		return errors.InvalidBloodGroup(req.BloodGroup)
	}
	return nil
}
