package handlers

import (
	"errors"
	"net/http"

	"designhub_backend/internal/middleware"
	"designhub_backend/internal/services"
	"designhub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// BlogHandler holds the blog service.
type BlogHandler struct {
	blogService services.BlogService
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(bs services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: bs}
}

func respondBlogError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	switch {
	case errors.Is(err, services.ErrBlogValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	case errors.Is(err, services.ErrBlogPostNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Blog post not found.", ""))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to process blog post.", "Internal error"))
	}
}

// isAdminCaller reports whether the current request carries an admin
// principal. Blog reads are public, so a missing principal is fine here.
func isAdminCaller(c *gin.Context) bool {
	principal, ok := middleware.GetPrincipal(c)
	return ok && principal.IsAdmin()
}

// CreatePost handles POST /api/blog. Admin only.
func (h *BlogHandler) CreatePost(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	var req services.CreateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreatePost: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	post, err := h.blogService.CreatePost(principal.UserID, req)
	if err != nil {
		respondBlogError(c, err, "CreatePost: Error from blogService.CreatePost")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, gin.H{"post": post})
}

// GetPosts handles GET /api/blog. Public sees published posts only.
func (h *BlogHandler) GetPosts(c *gin.Context) {
	posts, err := h.blogService.GetPosts(isAdminCaller(c))
	if err != nil {
		respondBlogError(c, err, "GetPosts: Error from blogService.GetPosts")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"posts": posts})
}

// GetPostByID handles GET /api/blog/:id. Public sees published posts only.
func (h *BlogHandler) GetPostByID(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid post ID", err.Error()))
		return
	}

	post, err := h.blogService.GetPostByID(id, isAdminCaller(c))
	if err != nil {
		respondBlogError(c, err, "GetPostByID: Error from blogService.GetPostByID")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"post": post})
}

// UpdatePost handles PUT /api/blog/:id. Admin only.
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid post ID", err.Error()))
		return
	}

	var req services.UpdateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdatePost: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	post, err := h.blogService.UpdatePost(id, req)
	if err != nil {
		respondBlogError(c, err, "UpdatePost: Error from blogService.UpdatePost")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"post": post})
}

// DeletePost handles DELETE /api/blog/:id. Admin only.
func (h *BlogHandler) DeletePost(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid post ID", err.Error()))
		return
	}

	if err := h.blogService.DeletePost(id); err != nil {
		respondBlogError(c, err, "DeletePost: Error from blogService.DeletePost")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"message": "Blog post deleted"})
}
