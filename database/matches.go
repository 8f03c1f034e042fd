package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"campustrace/models"
)

// UpsertMatch creates the match row for the (lost, found) pair or overwrites
// its score if the pair was already matched. The unique key on the pair makes
// this a single atomic statement, so two concurrent evaluations of the same
// pair cannot race into duplicate rows.
func (s *Service) UpsertMatch(ctx context.Context, lostItemID, foundItemID string, score float64) (models.Match, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO matches (id, lost_item_id, found_item_id, score)
		 VALUES (?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE score = VALUES(score)`,
		id, lostItemID, foundItemID, score)
	if err != nil {
		return models.Match{}, fmt.Errorf("failed to upsert match: %w", err)
	}

	var match models.Match
	err = s.db.QueryRowContext(ctx,
		`SELECT id, lost_item_id, found_item_id, score, created_at, updated_at
		 FROM matches WHERE lost_item_id = ? AND found_item_id = ?`,
		lostItemID, foundItemID).
		Scan(&match.ID, &match.LostItemID, &match.FoundItemID,
			&match.Score, &match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		return models.Match{}, fmt.Errorf("failed to read back match: %w", err)
	}
	return match, nil
}

// GetMatch returns a match with both linked items.
func (s *Service) GetMatch(ctx context.Context, matchID string) (models.MatchWithItems, error) {
	var m models.MatchWithItems
	err := s.db.QueryRowContext(ctx,
		`SELECT m.id, m.lost_item_id, m.found_item_id, m.score, m.created_at, m.updated_at,
		        l.id, l.user_id, l.kind, l.title, l.description, l.category, l.image_url, l.image_hash,
		        l.date_occurred, l.latitude, l.longitude, l.reward, l.qr_token, l.status, l.created_at,
		        f.id, f.user_id, f.kind, f.title, f.description, f.category, f.image_url, f.image_hash,
		        f.date_occurred, f.latitude, f.longitude, f.reward, f.qr_token, f.status, f.created_at
		 FROM matches m
		 JOIN items l ON l.id = m.lost_item_id
		 JOIN items f ON f.id = m.found_item_id
		 WHERE m.id = ?`, matchID).
		Scan(&m.ID, &m.LostItemID, &m.FoundItemID, &m.Score, &m.CreatedAt, &m.UpdatedAt,
			&m.LostItem.ID, &m.LostItem.UserID, &m.LostItem.Kind, &m.LostItem.Title,
			&m.LostItem.Description, &m.LostItem.Category, &m.LostItem.ImageURL,
			&m.LostItem.ImageHash, &m.LostItem.DateOccurred, &m.LostItem.Latitude,
			&m.LostItem.Longitude, &m.LostItem.Reward, &m.LostItem.QRToken,
			&m.LostItem.Status, &m.LostItem.CreatedAt,
			&m.FoundItem.ID, &m.FoundItem.UserID, &m.FoundItem.Kind, &m.FoundItem.Title,
			&m.FoundItem.Description, &m.FoundItem.Category, &m.FoundItem.ImageURL,
			&m.FoundItem.ImageHash, &m.FoundItem.DateOccurred, &m.FoundItem.Latitude,
			&m.FoundItem.Longitude, &m.FoundItem.Reward, &m.FoundItem.QRToken,
			&m.FoundItem.Status, &m.FoundItem.CreatedAt)
	if err == sql.ErrNoRows {
		return models.MatchWithItems{}, ErrNotFound
	}
	if err != nil {
		return models.MatchWithItems{}, fmt.Errorf("failed to query match: %w", err)
	}
	return m, nil
}

// ListMatchesForUser returns every match touching one of the user's items,
// newest first.
func (s *Service) ListMatchesForUser(ctx context.Context, userID string) ([]models.MatchWithItems, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.id, m.lost_item_id, m.found_item_id, m.score, m.created_at, m.updated_at,
		        l.id, l.user_id, l.kind, l.title, l.description, l.category, l.image_url, l.image_hash,
		        l.date_occurred, l.latitude, l.longitude, l.reward, l.qr_token, l.status, l.created_at,
		        f.id, f.user_id, f.kind, f.title, f.description, f.category, f.image_url, f.image_hash,
		        f.date_occurred, f.latitude, f.longitude, f.reward, f.qr_token, f.status, f.created_at
		 FROM matches m
		 JOIN items l ON l.id = m.lost_item_id
		 JOIN items f ON f.id = m.found_item_id
		 WHERE l.user_id = ? OR f.user_id = ?
		 ORDER BY m.created_at DESC`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.MatchWithItems, 0)
	for rows.Next() {
		var m models.MatchWithItems
		err := rows.Scan(&m.ID, &m.LostItemID, &m.FoundItemID, &m.Score, &m.CreatedAt, &m.UpdatedAt,
			&m.LostItem.ID, &m.LostItem.UserID, &m.LostItem.Kind, &m.LostItem.Title,
			&m.LostItem.Description, &m.LostItem.Category, &m.LostItem.ImageURL,
			&m.LostItem.ImageHash, &m.LostItem.DateOccurred, &m.LostItem.Latitude,
			&m.LostItem.Longitude, &m.LostItem.Reward, &m.LostItem.QRToken,
			&m.LostItem.Status, &m.LostItem.CreatedAt,
			&m.FoundItem.ID, &m.FoundItem.UserID, &m.FoundItem.Kind, &m.FoundItem.Title,
			&m.FoundItem.Description, &m.FoundItem.Category, &m.FoundItem.ImageURL,
			&m.FoundItem.ImageHash, &m.FoundItem.DateOccurred, &m.FoundItem.Latitude,
			&m.FoundItem.Longitude, &m.FoundItem.Reward, &m.FoundItem.QRToken,
			&m.FoundItem.Status, &m.FoundItem.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
