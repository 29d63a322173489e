package handlers

import (
	"errors"
	"net/http"

	"designhub_backend/internal/middleware"
	"designhub_backend/internal/services"
	"designhub_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler holds the notification service.
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(ns services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

// GetNotifications handles GET /api/notifications.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	notifications, unreadCount, err := h.notificationService.GetNotificationsForUser(principal.UserID)
	if err != nil {
		utils.LogError(err, "GetNotifications: Error from notificationService.GetNotificationsForUser")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load notifications.", "Internal error"))
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  unreadCount,
	})
}

// MarkRead handles PATCH /api/notifications/:id/read. A notification can only
// be marked by its recipient.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid notification ID", err.Error()))
		return
	}

	if err := h.notificationService.MarkNotificationRead(id, principal.UserID); err != nil {
		utils.LogError(err, "MarkRead: Error from notificationService.MarkNotificationRead")
		if errors.Is(err, services.ErrNotificationNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Notification not found.", ""))
			return
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to mark notification read.", "Internal error"))
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllRead handles PATCH /api/notifications/read-all.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", ""))
		return
	}

	if err := h.notificationService.MarkAllNotificationsRead(principal.UserID); err != nil {
		utils.LogError(err, "MarkAllRead: Error from notificationService.MarkAllNotificationsRead")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to mark notifications read.", "Internal error"))
		return
	}
	utils.RespondSuccess(c, http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
