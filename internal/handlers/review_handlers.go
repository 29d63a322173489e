package handlers

import (
	"errors"
	"net/http"

	"designhub_backend/internal/middleware"
	"designhub_backend/internal/services"
	"designhub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler holds the review service.
type ReviewHandler struct {
	reviewService services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(rs services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: rs}
}

// CreateReview handles POST /api/reviews. Client only.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateReview: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	review, err := h.reviewService.CreateReview(principal.UserID, req)
	if err != nil {
		utils.LogError(err, "CreateReview: Error from reviewService.CreateReview")
		switch {
		case errors.Is(err, services.ErrReviewValidation),
			errors.Is(err, services.ErrReviewConsultationMismatch):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create review.", "Internal error"))
		}
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"review": review})
}

// GetDesignerReviews handles GET /api/designers/:id/reviews. Public.
func (h *ReviewHandler) GetDesignerReviews(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid designer ID", err.Error()))
		return
	}

	reviews, err := h.reviewService.GetReviewsForDesigner(id)
	if err != nil {
		utils.LogError(err, "GetDesignerReviews: Error from reviewService.GetReviewsForDesigner")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load reviews.", "Internal error"))
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"reviews": reviews})
}
