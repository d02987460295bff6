package request

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyacare/blood-api/internal/model"
	requestService "github.com/arogyacare/blood-api/internal/service/request"
	"github.com/arogyacare/blood-api/pkg/logger"
)

type fakeRequestRepo struct {
	requests []*model.BloodRequest
}

func (r *fakeRequestRepo) Create(_ context.Context, request *model.BloodRequest) error {
	r.requests = append([]*model.BloodRequest{request}, r.requests...)
	return nil
}

func (r *fakeRequestRepo) Get(_ context.Context, _ uuid.UUID) (*model.BloodRequest, error) {
	return nil, nil
}

func (r *fakeRequestRepo) ListActive(_ context.Context) ([]*model.BloodRequest, error) {
	return r.requests, nil
}

type fakeOutboxRepo struct{}

func (fakeOutboxRepo) Create(_ context.Context, _ *model.OutboxEvent) error { return nil }
func (fakeOutboxRepo) GetPendingEvents(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return nil, nil
}
func (fakeOutboxRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ model.OutboxStatus, _ *string) error {
	return nil
}

func newTestRouter(repo *fakeRequestRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := requestService.NewService(repo, fakeOutboxRepo{}, logger.NewLogger(nil))
	h := NewHandler(svc)

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSubmitRequestMissingContactPhoneReturns400(t *testing.T) {
	repo := &fakeRequestRepo{}
	engine := newTestRouter(repo)

	w := postJSON(t, engine, "/api/v1/blood-requests", map[string]interface{}{
		"blood_group":    "A+",
		"contact_person": "Ravi",
		"address":        "City Hospital, Pune",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing_required_field")
	assert.Empty(t, repo.requests, "nothing may be persisted")
}

func TestSubmitRequestInvalidBloodGroupReturns400(t *testing.T) {
	engine := newTestRouter(&fakeRequestRepo{})

	w := postJSON(t, engine, "/api/v1/blood-requests", map[string]interface{}{
		"blood_group":    "Z+",
		"contact_person": "Ravi",
		"contact_phone":  "9876543210",
		"address":        "City Hospital, Pune",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_blood_group")
}

func TestSubmitRequestDefaultsUnits(t *testing.T) {
	repo := &fakeRequestRepo{}
	engine := newTestRouter(repo)

	w := postJSON(t, engine, "/api/v1/blood-requests", map[string]interface{}{
		"blood_group":    "B-",
		"units_needed":   -2,
		"contact_person": "Ravi",
		"contact_phone":  "9876543210",
		"address":        "City Hospital, Pune",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.requests, 1)
	assert.Equal(t, 1, repo.requests[0].UnitsNeeded)
	assert.Equal(t, model.UrgencyHigh, repo.requests[0].Urgency)
}

func TestListActiveReturnsActiveOnly(t *testing.T) {
	repo := &fakeRequestRepo{requests: []*model.BloodRequest{
		{Base: model.Base{ID: uuid.New()}, BloodGroup: model.BloodGroupOPos, Status: model.RequestStatusActive},
		{Base: model.Base{ID: uuid.New()}, BloodGroup: model.BloodGroupBNeg, Status: model.RequestStatusFulfilled},
	}}
	engine := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/blood-requests", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string                `json:"status"`
		Data   []*model.BloodRequest `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, model.RequestStatusActive, resp.Data[0].Status)
}
