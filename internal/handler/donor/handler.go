package donor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arogyacare/blood-api/internal/handler"
	"github.com/arogyacare/blood-api/internal/model"
	"github.com/arogyacare/blood-api/internal/service/donor"
	"github.com/arogyacare/blood-api/pkg/httputil"
)

type Handler struct {
	service donor.DonorService
}

func NewHandler(service donor.DonorService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	donors := r.Group("/donors")
	{
		donors.POST("", h.RegisterDonor)
		donors.GET("", h.ListDonors)
		donors.PUT("/:id/availability", h.UpdateAvailability)
	}
}

func (h *Handler) RegisterDonor(c *gin.Context) {
	var req model.RegisterDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	record, err := h.service.RegisterDonor(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(record))
}

// ListDonors returns available donors. With a recipient query param the
// list is narrowed to compatible groups; without one everyone is shown.
func (h *Handler) ListDonors(c *gin.Context) {
	var recipient *model.BloodGroup
	if raw, ok := c.GetQuery("recipient"); ok {
		g := model.BloodGroup(raw)
		recipient = &g
	}

	donors, err := h.service.FindCompatibleDonors(c.Request.Context(), recipient)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(donors))
}

func (h *Handler) UpdateAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid donor ID"))
		return
	}

	var req model.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.SetAvailability(c.Request.Context(), id, *req.IsAvailable); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"id": id, "is_available": *req.IsAvailable}))
}
