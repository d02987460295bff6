package request

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyacare/blood-api/internal/model"
	"github.com/arogyacare/blood-api/internal/repository"
	"github.com/arogyacare/blood-api/pkg/errors"
	"github.com/arogyacare/blood-api/pkg/logger"
)

type fakeRequestRepo struct {
	requests  []*model.BloodRequest
	listErr   error
	createErr error
}

func (r *fakeRequestRepo) Create(_ context.Context, request *model.BloodRequest) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.requests = append([]*model.BloodRequest{request}, r.requests...)
	return nil
}

func (r *fakeRequestRepo) Get(_ context.Context, id uuid.UUID) (*model.BloodRequest, error) {
	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRequestRepo) ListActive(_ context.Context) ([]*model.BloodRequest, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.requests, nil
}

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (r *fakeOutboxRepo) Create(_ context.Context, event *model.OutboxEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *fakeOutboxRepo) GetPendingEvents(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return r.events, nil
}

func (r *fakeOutboxRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ model.OutboxStatus, _ *string) error {
	return nil
}

func validSubmission() *model.CreateBloodRequestRequest {
	return &model.CreateBloodRequestRequest{
		BloodGroup:    "A+",
		UnitsNeeded:   2,
		Urgency:       "critical",
		ContactPerson: "Ravi",
		ContactPhone:  "9876543210",
		Address:       "City Hospital, Pune",
	}
}

func TestSubmitRequestMissingContactPhone(t *testing.T) {
	repo := &fakeRequestRepo{}
	svc := NewService(repo, &fakeOutboxRepo{}, logger.NewLogger(nil))

	req := validSubmission()
	req.ContactPhone = ""

	_, err := svc.SubmitRequest(context.Background(), req, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindMissingRequiredField))
	assert.Empty(t, repo.requests, "nothing may be persisted on validation failure")
}

func TestSubmitRequestMissingFields(t *testing.T) {
	svc := NewService(&fakeRequestRepo{}, &fakeOutboxRepo{}, logger.NewLogger(nil))

	mutations := map[string]func(*model.CreateBloodRequestRequest){
		"blood_group":    func(r *model.CreateBloodRequestRequest) { r.BloodGroup = "" },
		"contact_person": func(r *model.CreateBloodRequestRequest) { r.ContactPerson = "" },
		"contact_phone":  func(r *model.CreateBloodRequestRequest) { r.ContactPhone = "  " },
		"address":        func(r *model.CreateBloodRequestRequest) { r.Address = "" },
	}

	for field, mutate := range mutations {
		req := validSubmission()
		mutate(req)
		_, err := svc.SubmitRequest(context.Background(), req, uuid.New())
		require.Error(t, err, "missing %s must be rejected", field)
		assert.True(t, errors.IsKind(err, errors.KindMissingRequiredField), "missing %s", field)
	}
}

func TestSubmitRequestInvalidBloodGroup(t *testing.T) {
	svc := NewService(&fakeRequestRepo{}, &fakeOutboxRepo{}, logger.NewLogger(nil))

	req := validSubmission()
	req.BloodGroup = "XX"

	_, err := svc.SubmitRequest(context.Background(), req, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindInvalidBloodGroup))
}

func TestSubmitRequestNormalizesUnitsAndUrgency(t *testing.T) {
	svc := NewService(&fakeRequestRepo{}, &fakeOutboxRepo{}, logger.NewLogger(nil))

	req := validSubmission()
	req.UnitsNeeded = 0
	req.Urgency = ""

	created, err := svc.SubmitRequest(context.Background(), req, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, created.UnitsNeeded)
	assert.Equal(t, model.UrgencyHigh, created.Urgency)
	assert.Equal(t, model.RequestStatusActive, created.Status)

	req = validSubmission()
	req.UnitsNeeded = -3
	created, err = svc.SubmitRequest(context.Background(), req, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 1, created.UnitsNeeded)
}

func TestSubmitRequestEmitsEvent(t *testing.T) {
	outbox := &fakeOutboxRepo{}
	svc := NewService(&fakeRequestRepo{}, outbox, logger.NewLogger(nil))

	_, err := svc.SubmitRequest(context.Background(), validSubmission(), uuid.New())
	require.NoError(t, err)
	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventBloodRequestCreated, outbox.events[0].EventType)
}

func TestSubmitRequestBackendFailure(t *testing.T) {
	repo := &fakeRequestRepo{createErr: fmt.Errorf("connection refused")}
	svc := NewService(repo, &fakeOutboxRepo{}, logger.NewLogger(nil))

	_, err := svc.SubmitRequest(context.Background(), validSubmission(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindBackendUnavailable))
}

func TestListActiveFiltersNonActive(t *testing.T) {
	repo := &fakeRequestRepo{requests: []*model.BloodRequest{
		{Base: model.Base{ID: uuid.New()}, BloodGroup: model.BloodGroupOPos, Status: model.RequestStatusActive},
		{Base: model.Base{ID: uuid.New()}, BloodGroup: model.BloodGroupBNeg, Status: model.RequestStatusFulfilled},
	}}
	svc := NewService(repo, &fakeOutboxRepo{}, logger.NewLogger(nil))

	got, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, repo.requests[0], got[0])
}

func TestListActiveBackendFailure(t *testing.T) {
	repo := &fakeRequestRepo{listErr: fmt.Errorf("connection refused")}
	svc := NewService(repo, &fakeOutboxRepo{}, logger.NewLogger(nil))

	_, err := svc.ListActive(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindBackendUnavailable))
}
