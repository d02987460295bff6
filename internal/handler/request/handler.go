package request

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arogyacare/blood-api/internal/handler"
	"github.com/arogyacare/blood-api/internal/model"
	"github.com/arogyacare/blood-api/internal/service/request"
	"github.com/arogyacare/blood-api/pkg/httputil"
)

type Handler struct {
	service request.BloodRequestService
}

func NewHandler(service request.BloodRequestService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/blood-requests")
	{
		requests.POST("", h.SubmitRequest)
		requests.GET("", h.ListActive)
	}
}

func (h *Handler) SubmitRequest(c *gin.Context) {
	var req model.CreateBloodRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	// Requester identity comes from the gateway; absent when a request
	// is raised anonymously at the front desk.
	requestedBy := uuid.Nil
	if raw := c.GetHeader("X-User-ID"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			requestedBy = id
		}
	}

	created, err := h.service.SubmitRequest(c.Request.Context(), &req, requestedBy)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) ListActive(c *gin.Context) {
	requests, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(requests))
}
