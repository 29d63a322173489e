package services

import (
	"database/sql"
	"errors"
	"fmt"

	"designhub_backend/internal/models"
	"designhub_backend/internal/repositories"
)

// --- Custom Service Errors for Notifications ---
var (
	ErrNotificationNotFound   = errors.New("notification not found")
	ErrNotificationValidation = errors.New("notification data validation error")
)

// --- NotificationService Interface ---
// Dispatch is the outbound side used by other services as a fire-and-forget
// capability: callers log a dispatch failure, they never propagate it.
type NotificationService interface {
	Dispatch(recipientID int64, title, message string, category models.NotificationCategory) error
	GetNotificationsForUser(userID int64) ([]models.Notification, int, error)
	MarkNotificationRead(notificationID int64, userID int64) error
	MarkAllNotificationsRead(userID int64) error
}

// --- notificationService Implementation ---
type notificationService struct {
	notificationRepo repositories.NotificationRepository
	db               *sql.DB
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(nr repositories.NotificationRepository, db *sql.DB) NotificationService {
	return &notificationService{notificationRepo: nr, db: db}
}

func (s *notificationService) Dispatch(recipientID int64, title, message string, category models.NotificationCategory) error {
	if recipientID == 0 || title == "" {
		return fmt.Errorf("%w: recipient and title are required", ErrNotificationValidation)
	}
	if !models.IsValidNotificationCategory(string(category)) {
		return fmt.Errorf("%w: invalid category '%s'", ErrNotificationValidation, category)
	}

	notification := &models.Notification{
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
		Category:    category,
	}
	if _, err := s.notificationRepo.CreateNotification(s.db, notification); err != nil {
		return fmt.Errorf("failed to persist notification: %w", err)
	}
	return nil
}

func (s *notificationService) GetNotificationsForUser(userID int64) ([]models.Notification, int, error) {
	notifications, err := s.notificationRepo.GetNotificationsByRecipient(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}
	unread, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return notifications, unread, nil
}

func (s *notificationService) MarkNotificationRead(notificationID int64, userID int64) error {
	err := s.notificationRepo.MarkRead(s.db, notificationID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllNotificationsRead(userID int64) error {
	if err := s.notificationRepo.MarkAllRead(s.db, userID); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}
