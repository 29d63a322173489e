package handlers

import (
	"errors"
	"net/http"

	"designhub_backend/internal/middleware"
	"designhub_backend/internal/services"
	"designhub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler holds the availability service.
type AvailabilityHandler struct {
	availabilityService services.AvailabilityService
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(as services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: as}
}

func respondAvailabilityError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	switch {
	case errors.Is(err, services.ErrSlotValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	case errors.Is(err, services.ErrSlotForbidden):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You do not own this availability slot.", ""))
	case errors.Is(err, services.ErrSlotNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Availability slot not found.", ""))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process availability slot.", "Internal error"))
	}
}

// CreateSlot handles POST /api/availability. Designer only.
func (h *AvailabilityHandler) CreateSlot(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	var req services.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateSlot: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	slot, err := h.availabilityService.CreateSlot(principal.UserID, req)
	if err != nil {
		respondAvailabilityError(c, err, "CreateSlot: Error from availabilityService.CreateSlot")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"slot": slot})
}

// GetDesignerSlots handles GET /api/designers/:id/availability. Public; only
// active slots are exposed.
func (h *AvailabilityHandler) GetDesignerSlots(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid designer ID", err.Error()))
		return
	}

	slots, err := h.availabilityService.GetSlotsForDesigner(id, true)
	if err != nil {
		respondAvailabilityError(c, err, "GetDesignerSlots: Error from availabilityService.GetSlotsForDesigner")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"slots": slots})
}

// GetOwnSlots handles GET /api/availability. Designers see all of their
// slots, inactive ones included.
func (h *AvailabilityHandler) GetOwnSlots(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	slots, err := h.availabilityService.GetSlotsForDesigner(principal.UserID, false)
	if err != nil {
		respondAvailabilityError(c, err, "GetOwnSlots: Error from availabilityService.GetSlotsForDesigner")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"slots": slots})
}

// UpdateSlot handles PUT /api/availability/:id. Designer only.
func (h *AvailabilityHandler) UpdateSlot(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid slot ID", err.Error()))
		return
	}

	var req services.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateSlot: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	slot, err := h.availabilityService.UpdateSlot(id, principal.UserID, req)
	if err != nil {
		respondAvailabilityError(c, err, "UpdateSlot: Error from availabilityService.UpdateSlot")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"slot": slot})
}

// DeleteSlot handles DELETE /api/availability/:id. Designer only.
func (h *AvailabilityHandler) DeleteSlot(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid slot ID", err.Error()))
		return
	}

	if err := h.availabilityService.DeleteSlot(id, principal.UserID); err != nil {
		respondAvailabilityError(c, err, "DeleteSlot: Error from availabilityService.DeleteSlot")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"message": "Availability slot deleted"})
}
