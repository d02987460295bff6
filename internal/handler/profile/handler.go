package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/arogyacare/blood-api/internal/handler"
	"github.com/arogyacare/blood-api/internal/model"
	"github.com/arogyacare/blood-api/internal/service/profile"
	"github.com/arogyacare/blood-api/pkg/httputil"
)

type Handler struct {
	service profile.BloodProfileService
}

func NewHandler(service profile.BloodProfileService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/blood-profiles")
	{
		profiles.GET("/:patientId", h.Lookup)
		profiles.PUT("/:patientId/group", h.SetBloodGroup)
		profiles.PUT("/:patientId/consent", h.SetDonorConsent)
	}
}

// Lookup serves the staff-facing blood group lookup. A profile with no
// group recorded comes back with blood_group null, not a 404.
func (h *Handler) Lookup(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	p, err := h.service.Lookup(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) SetBloodGroup(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	var req model.SetBloodGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.SetBloodGroup(c.Request.Context(), patientID, req.BloodGroup); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"patient_id":  patientID,
		"blood_group": req.BloodGroup,
	}))
}

func (h *Handler) SetDonorConsent(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}

	var req model.SetDonorConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.SetDonorConsent(c.Request.Context(), patientID, *req.DonorConsent); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"patient_id":    patientID,
		"donor_consent": *req.DonorConsent,
	}))
}
