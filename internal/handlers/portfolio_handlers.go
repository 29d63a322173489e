package handlers

import (
	"errors"
	"net/http"

	"designhub_backend/internal/middleware"
	"designhub_backend/internal/services"
	"designhub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PortfolioHandler holds the portfolio service.
type PortfolioHandler struct {
	portfolioService services.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(ps services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: ps}
}

func respondPortfolioError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	switch {
	case errors.Is(err, services.ErrPortfolioValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	case errors.Is(err, services.ErrPortfolioItemForbidden):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You do not own this portfolio item.", ""))
	case errors.Is(err, services.ErrPortfolioItemNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Portfolio item not found.", ""))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process portfolio item.", "Internal error"))
	}
}

// CreateItem handles POST /api/portfolio. Designer only.
func (h *PortfolioHandler) CreateItem(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	var req services.CreatePortfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateItem: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.portfolioService.CreateItem(principal.UserID, req)
	if err != nil {
		respondPortfolioError(c, err, "CreateItem: Error from portfolioService.CreateItem")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"item": item})
}

// GetDesignerItems handles GET /api/designers/:id/portfolio. Public.
func (h *PortfolioHandler) GetDesignerItems(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid designer ID", err.Error()))
		return
	}

	items, err := h.portfolioService.GetItemsForDesigner(id)
	if err != nil {
		respondPortfolioError(c, err, "GetDesignerItems: Error from portfolioService.GetItemsForDesigner")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"items": items})
}

// UpdateItem handles PUT /api/portfolio/:id. Designer only.
func (h *PortfolioHandler) UpdateItem(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid item ID", err.Error()))
		return
	}

	var req services.UpdatePortfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateItem: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	item, err := h.portfolioService.UpdateItem(id, principal.UserID, req)
	if err != nil {
		respondPortfolioError(c, err, "UpdateItem: Error from portfolioService.UpdateItem")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"item": item})
}

// DeleteItem handles DELETE /api/portfolio/:id. Designer only.
func (h *PortfolioHandler) DeleteItem(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid item ID", err.Error()))
		return
	}

	if err := h.portfolioService.DeleteItem(id, principal.UserID); err != nil {
		respondPortfolioError(c, err, "DeleteItem: Error from portfolioService.DeleteItem")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"message": "Portfolio item deleted"})
}
