package profile

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyacare/blood-api/internal/model"
	"github.com/arogyacare/blood-api/internal/repository"
	"github.com/arogyacare/blood-api/pkg/errors"
)

type fakeProfileRepo struct {
	profiles   map[uuid.UUID]*model.PatientBloodProfile
	groupCalls int
	err        error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*model.PatientBloodProfile)}
}

func (r *fakeProfileRepo) Get(_ context.Context, patientID uuid.UUID) (*model.PatientBloodProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.profiles[patientID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) UpdateBloodGroup(_ context.Context, patientID uuid.UUID, group model.BloodGroup) error {
	if r.err != nil {
		return r.err
	}
	r.groupCalls++
	p, ok := r.profiles[patientID]
	if !ok {
		p = &model.PatientBloodProfile{PatientID: patientID}
		r.profiles[patientID] = p
	}
	p.BloodGroup = &group
	p.UpdatedAt = time.Now()
	return nil
}

func (r *fakeProfileRepo) UpdateConsent(_ context.Context, patientID uuid.UUID, consent bool) error {
	if r.err != nil {
		return r.err
	}
	p, ok := r.profiles[patientID]
	if !ok {
		p = &model.PatientBloodProfile{PatientID: patientID}
		r.profiles[patientID] = p
	}
	p.DonorConsent = consent
	p.UpdatedAt = time.Now()
	return nil
}

func TestLookupNotFound(t *testing.T) {
	svc := NewService(newFakeProfileRepo())

	_, err := svc.Lookup(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestLookupProfileWithoutBloodGroup(t *testing.T) {
	repo := newFakeProfileRepo()
	patientID := uuid.New()
	repo.profiles[patientID] = &model.PatientBloodProfile{PatientID: patientID, DonorConsent: true}
	svc := NewService(repo)

	profile, err := svc.Lookup(context.Background(), patientID)
	require.NoError(t, err)
	assert.Nil(t, profile.BloodGroup)
	assert.True(t, profile.DonorConsent)
}

func TestSetBloodGroupRejectsInvalid(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewService(repo)

	err := svc.SetBloodGroup(context.Background(), uuid.New(), "Z+")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindInvalidBloodGroup))
	assert.Zero(t, repo.groupCalls, "nothing may be persisted on validation failure")
}

func TestSetBloodGroupIdempotent(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewService(repo)
	patientID := uuid.New()

	require.NoError(t, svc.SetBloodGroup(context.Background(), patientID, "O+"))
	require.NoError(t, svc.SetBloodGroup(context.Background(), patientID, "O+"))

	profile, err := svc.Lookup(context.Background(), patientID)
	require.NoError(t, err)
	require.NotNil(t, profile.BloodGroup)
	assert.Equal(t, model.BloodGroupOPos, *profile.BloodGroup)
}

func TestSetDonorConsentIndependentOfBloodGroup(t *testing.T) {
	repo := newFakeProfileRepo()
	svc := NewService(repo)
	patientID := uuid.New()

	require.NoError(t, svc.SetDonorConsent(context.Background(), patientID, true))

	profile, err := svc.Lookup(context.Background(), patientID)
	require.NoError(t, err)
	assert.Nil(t, profile.BloodGroup)
	assert.True(t, profile.DonorConsent)

	require.NoError(t, svc.SetDonorConsent(context.Background(), patientID, false))
	profile, err = svc.Lookup(context.Background(), patientID)
	require.NoError(t, err)
	assert.False(t, profile.DonorConsent)
}

func TestBackendFailurePropagates(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.err = fmt.Errorf("connection refused")
	svc := NewService(repo)

	_, err := svc.Lookup(context.Background(), uuid.New())
	assert.True(t, errors.IsKind(err, errors.KindBackendUnavailable))

	err = svc.SetBloodGroup(context.Background(), uuid.New(), "A-")
	assert.True(t, errors.IsKind(err, errors.KindBackendUnavailable))

	err = svc.SetDonorConsent(context.Background(), uuid.New(), true)
	assert.True(t, errors.IsKind(err, errors.KindBackendUnavailable))
}
