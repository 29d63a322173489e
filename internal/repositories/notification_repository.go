package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"designhub_backend/internal/models"
)

// NotificationRepository defines the interface for notification persistence.
type NotificationRepository interface {
	CreateNotification(executor SQLExecutor, notification *models.Notification) (*models.Notification, error)
	GetNotificationsByRecipient(recipientID int64) ([]models.Notification, error)
	CountUnread(recipientID int64) (int, error)
	// MarkRead flips is_read for a single notification, scoped to its owner.
	MarkRead(executor SQLExecutor, id int64, recipientID int64) error
	MarkAllRead(executor SQLExecutor, recipientID int64) error
}

type notificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository.
func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateNotification(executor SQLExecutor, notification *models.Notification) (*models.Notification, error) {
	query := `INSERT INTO notifications
	            (recipient_id, title, message, category, is_read, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`

	notification.CreatedAt = time.Now()
	notification.IsRead = false

	err := executor.QueryRow(query,
		notification.RecipientID, notification.Title, notification.Message,
		notification.Category, notification.IsRead, notification.CreatedAt,
	).Scan(&notification.ID, &notification.CreatedAt)
	if err != nil {
		return nil, mapWriteError(err, "creating notification")
	}
	return notification, nil
}

func (r *notificationRepository) GetNotificationsByRecipient(recipientID int64) ([]models.Notification, error) {
	query := `SELECT id, recipient_id, title, message, category, is_read, created_at
	          FROM notifications WHERE recipient_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, recipientID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying notifications: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Category, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning notification: %v", ErrDatabaseError, err)
		}
		notifications = append(notifications, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating notification rows: %v", ErrDatabaseError, err)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(recipientID int64) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = false", recipientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting unread notifications: %v", ErrDatabaseError, err)
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(executor SQLExecutor, id int64, recipientID int64) error {
	result, err := executor.Exec(
		"UPDATE notifications SET is_read = true WHERE id = $1 AND recipient_id = $2",
		id, recipientID,
	)
	if err != nil {
		return fmt.Errorf("%w: marking notification ID %d read: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(executor SQLExecutor, recipientID int64) error {
	_, err := executor.Exec(
		"UPDATE notifications SET is_read = true WHERE recipient_id = $1 AND is_read = false",
		recipientID,
	)
	if err != nil {
		return fmt.Errorf("%w: marking all notifications read: %v", ErrDatabaseError, err)
	}
	return nil
}
