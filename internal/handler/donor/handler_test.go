package donor

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyacare/blood-api/internal/middleware"
	"github.com/arogyacare/blood-api/internal/model"
	"github.com/arogyacare/blood-api/internal/repository"
	donorService "github.com/arogyacare/blood-api/internal/service/donor"
	"github.com/arogyacare/blood-api/pkg/logger"
	"github.com/arogyacare/blood-api/pkg/metrics"
)

type fakeDonorRepo struct {
	donors []*model.DonorRecord
}

func (r *fakeDonorRepo) Create(_ context.Context, donor *model.DonorRecord) error {
	r.donors = append([]*model.DonorRecord{donor}, r.donors...)
	return nil
}

func (r *fakeDonorRepo) Get(_ context.Context, id uuid.UUID) (*model.DonorRecord, error) {
	for _, d := range r.donors {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeDonorRepo) ListAvailable(_ context.Context) ([]*model.DonorRecord, error) {
	return r.donors, nil
}

func (r *fakeDonorRepo) SetAvailability(_ context.Context, id uuid.UUID, available bool) error {
	for _, d := range r.donors {
		if d.ID == id {
			d.IsAvailable = available
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeOutboxRepo struct{}

func (fakeOutboxRepo) Create(_ context.Context, _ *model.OutboxEvent) error { return nil }
func (fakeOutboxRepo) GetPendingEvents(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return nil, nil
}
func (fakeOutboxRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ model.OutboxStatus, _ *string) error {
	return nil
}

var handlerTestMetrics = metrics.NewMetrics("arogyacare_test", "donor_handler")

func newTestRouter(t *testing.T, repo *fakeDonorRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, middleware.RegisterValidators())

	svc := donorService.NewService(repo, fakeOutboxRepo{}, time.Minute, logger.NewLogger(nil), handlerTestMetrics)
	h := NewHandler(svc)

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func available(group model.BloodGroup) *model.DonorRecord {
	return &model.DonorRecord{
		Base:         model.Base{ID: uuid.New()},
		Name:         "Donor",
		Kind:         model.DonorKindIndividual,
		BloodGroup:   group,
		IsAvailable:  true,
		ConsentGiven: true,
	}
}

func TestRegisterDonorBindingRejectsUnknownGroup(t *testing.T) {
	repo := &fakeDonorRepo{}
	engine := newTestRouter(t, repo)

	payload, _ := json.Marshal(map[string]interface{}{
		"name":          "Asha",
		"blood_group":   "H+",
		"address":       "12 MG Road",
		"consent_given": true,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/donors", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.donors)
}

func TestRegisterDonorCreated(t *testing.T) {
	repo := &fakeDonorRepo{}
	engine := newTestRouter(t, repo)

	payload, _ := json.Marshal(map[string]interface{}{
		"name":          "Asha",
		"blood_group":   "O-",
		"address":       "12 MG Road",
		"city":          "Pune",
		"consent_given": true,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/donors", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.donors, 1)
	assert.True(t, repo.donors[0].IsAvailable)
}

func TestListDonorsWithRecipientFilters(t *testing.T) {
	oneg := available(model.BloodGroupONeg)
	bpos := available(model.BloodGroupBPos)
	repo := &fakeDonorRepo{donors: []*model.DonorRecord{oneg, bpos}}
	engine := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/donors?recipient=A-", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []*model.DonorRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, model.BloodGroupONeg, resp.Data[0].BloodGroup)
}

func TestListDonorsUnknownRecipientIsEmptyNotError(t *testing.T) {
	repo := &fakeDonorRepo{donors: []*model.DonorRecord{available(model.BloodGroupONeg)}}
	engine := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/donors?recipient=XX", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []*model.DonorRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Data)
}

func TestUpdateAvailability(t *testing.T) {
	d := available(model.BloodGroupAPos)
	repo := &fakeDonorRepo{donors: []*model.DonorRecord{d}}
	engine := newTestRouter(t, repo)

	payload, _ := json.Marshal(map[string]interface{}{"is_available": false})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/donors/"+d.ID.String()+"/availability", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, d.IsAvailable)
}

func TestUpdateAvailabilityUnknownDonor(t *testing.T) {
	engine := newTestRouter(t, &fakeDonorRepo{})

	payload, _ := json.Marshal(map[string]interface{}{"is_available": true})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/donors/"+uuid.NewString()+"/availability", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
