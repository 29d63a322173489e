package handlers

import (
	"errors"
	"net/http"

	"designhub_backend/internal/middleware"
	"designhub_backend/internal/services"
	"designhub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ConsultationHandler holds the consultation service.
type ConsultationHandler struct {
	consultationService services.ConsultationService
}

// NewConsultationHandler creates a new ConsultationHandler.
func NewConsultationHandler(cs services.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{consultationService: cs}
}

// respondConsultationError maps consultation service errors onto the envelope.
func respondConsultationError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	switch {
	case errors.Is(err, services.ErrConsultationValidation),
		errors.Is(err, services.ErrDesignerForBookingMissing),
		errors.Is(err, services.ErrIllegalStatusTransition):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	case errors.Is(err, services.ErrConsultationForbidden):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You are not allowed to act on this consultation.", ""))
	case errors.Is(err, services.ErrConsultationNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Consultation not found.", ""))
	case errors.Is(err, services.ErrStaleConsultationVersion):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Consultation was modified concurrently. Re-read and retry.", ""))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process consultation.", "Internal error"))
	}
}

// BookConsultation handles POST /api/consultations. The client id always
// comes from the authenticated principal, never from the body.
func (h *ConsultationHandler) BookConsultation(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	var req services.BookConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "BookConsultation: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	consultation, err := h.consultationService.BookConsultation(principal.UserID, req)
	if err != nil {
		respondConsultationError(c, err, "BookConsultation: Error from consultationService.BookConsultation")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"consultation": consultation})
}

// GetOwnConsultations handles GET /api/consultations/user.
func (h *ConsultationHandler) GetOwnConsultations(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	consultations, err := h.consultationService.ListForClient(principal.UserID)
	if err != nil {
		respondConsultationError(c, err, "GetOwnConsultations: Error from consultationService.ListForClient")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"consultations": consultations})
}

// GetDesignerConsultations handles GET /api/consultations/designer.
func (h *ConsultationHandler) GetDesignerConsultations(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	consultations, err := h.consultationService.ListForDesigner(principal.UserID)
	if err != nil {
		respondConsultationError(c, err, "GetDesignerConsultations: Error from consultationService.ListForDesigner")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"consultations": consultations})
}

// GetAllConsultations handles GET /api/consultations/admin/all.
func (h *ConsultationHandler) GetAllConsultations(c *gin.Context) {
	consultations, err := h.consultationService.ListAll()
	if err != nil {
		respondConsultationError(c, err, "GetAllConsultations: Error from consultationService.ListAll")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"consultations": consultations})
}

// GetConsultationByID handles GET /api/consultations/:id.
func (h *ConsultationHandler) GetConsultationByID(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid consultation ID", err.Error()))
		return
	}

	consultation, err := h.consultationService.GetConsultationByID(id, principal)
	if err != nil {
		respondConsultationError(c, err, "GetConsultationByID: Error from consultationService.GetConsultationByID")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"consultation": consultation})
}

// UpdateConsultationStatus handles PUT /api/consultations/:id/status.
func (h *ConsultationHandler) UpdateConsultationStatus(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid consultation ID", err.Error()))
		return
	}

	var req services.UpdateConsultationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateConsultationStatus: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	consultation, err := h.consultationService.UpdateStatus(id, req, principal)
	if err != nil {
		respondConsultationError(c, err, "UpdateConsultationStatus: Error from consultationService.UpdateStatus")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"consultation": consultation})
}
