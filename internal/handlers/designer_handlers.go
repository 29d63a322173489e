package handlers

import (
	"errors"
	"net/http"

	"designhub_backend/internal/middleware"
	"designhub_backend/internal/services"
	"designhub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DesignerHandler holds the designer directory service.
type DesignerHandler struct {
	designerService services.DesignerService
}

// NewDesignerHandler creates a new DesignerHandler.
func NewDesignerHandler(ds services.DesignerService) *DesignerHandler {
	return &DesignerHandler{designerService: ds}
}

// ListDesigners handles GET /api/designers. Public.
func (h *DesignerHandler) ListDesigners(c *gin.Context) {
	designers, err := h.designerService.ListDesigners()
	if err != nil {
		utils.LogError(err, "ListDesigners: Error from designerService.ListDesigners")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list designers.", "Internal error"))
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"designers": designers})
}

// GetDesignerProfile handles GET /api/designers/:id. Public.
func (h *DesignerHandler) GetDesignerProfile(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid designer ID", err.Error()))
		return
	}

	profile, err := h.designerService.GetDesignerProfile(id)
	if err != nil {
		utils.LogError(err, "GetDesignerProfile: Error from designerService.GetDesignerProfile")
		if errors.Is(err, services.ErrDesignerNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Designer not found.", ""))
			return
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load designer profile.", "Internal error"))
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"designer": profile})
}

// UpdateOwnProfile handles PUT /api/profile.
func (h *DesignerHandler) UpdateOwnProfile(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateOwnProfile: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	user, err := h.designerService.UpdateOwnProfile(principal.UserID, req)
	if err != nil {
		utils.LogError(err, "UpdateOwnProfile: Error from designerService.UpdateOwnProfile")
		switch {
		case errors.Is(err, services.ErrProfileValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		case errors.Is(err, services.ErrAccountExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email already taken.", ""))
		case errors.Is(err, services.ErrUserNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User not found.", ""))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update profile.", "Internal error"))
		}
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"user": user})
}
