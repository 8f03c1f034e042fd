package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"campustrace/models"
)

// CreateMessage stores one chat message. Content is expected to be already
// sanitized by the caller.
func (s *Service) CreateMessage(ctx context.Context, message models.Message) (models.Message, error) {
	message.ID = uuid.NewString()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, match_id, sender_id, receiver_id, content)
		 VALUES (?, ?, ?, ?, ?)`,
		message.ID, message.MatchID, message.SenderID, message.ReceiverID, message.Content)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to insert message: %w", err)
	}
	return message, nil
}

// ListMessages returns a match's conversation in chronological order.
func (s *Service) ListMessages(ctx context.Context, matchID string) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, match_id, sender_id, receiver_id, content, created_at
		 FROM messages WHERE match_id = ?
		 ORDER BY created_at ASC`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.MatchID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
