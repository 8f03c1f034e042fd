package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"campustrace/models"
)

// Notify inserts a notification for a single user. This satisfies the
// matcher's NotificationSink interface.
func (s *Service) Notify(ctx context.Context, userID, title, body string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO notifications (id, user_id, title, body) VALUES (?, ?, ?, ?)",
		uuid.NewString(), userID, title, body)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListNotifications returns the user's latest notifications, capped at 50.
func (s *Service) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, title, body, is_read, created_at
		 FROM notifications WHERE user_id = ?
		 ORDER BY created_at DESC LIMIT 50`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0)
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead flags one of the user's notifications as read.
func (s *Service) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = TRUE WHERE id = ? AND user_id = ?",
		notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}
