package models

import "time"

// NotificationCategory groups notifications by the feature that produced them.
type NotificationCategory string

const (
	NotificationCategoryBooking NotificationCategory = "booking"
	NotificationCategoryReview  NotificationCategory = "review"
	NotificationCategoryOrder   NotificationCategory = "order"
	NotificationCategorySystem  NotificationCategory = "system"
)

// IsValidNotificationCategory checks if the provided category string is valid.
func IsValidNotificationCategory(category string) bool {
	switch NotificationCategory(category) {
	case NotificationCategoryBooking,
		NotificationCategoryReview,
		NotificationCategoryOrder,
		NotificationCategorySystem:
		return true
	default:
		return false
	}
}

// Notification is a persisted user-facing notice.
type Notification struct {
	ID          int64                `json:"id" db:"id"`
	RecipientID int64                `json:"recipient_id" db:"recipient_id"`
	Title       string               `json:"title" db:"title"`
	Message     string               `json:"message" db:"message"`
	Category    NotificationCategory `json:"category" db:"category"`
	IsRead      bool                 `json:"is_read" db:"is_read"`
	CreatedAt   time.Time            `json:"created_at" db:"created_at"`
}
