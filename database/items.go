package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"campustrace/models"
)

const itemColumns = `id, user_id, kind, title, description, category, image_url, image_hash,
	date_occurred, latitude, longitude, reward, qr_token, status, created_at`

func scanItem(row interface{ Scan(...any) error }) (models.Item, error) {
	var item models.Item
	err := row.Scan(&item.ID, &item.UserID, &item.Kind, &item.Title, &item.Description,
		&item.Category, &item.ImageURL, &item.ImageHash, &item.DateOccurred,
		&item.Latitude, &item.Longitude, &item.Reward, &item.QRToken,
		&item.Status, &item.CreatedAt)
	return item, err
}

// CreateItem inserts a new item report.
func (s *Service) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	item.ID = uuid.NewString()
	item.Status = models.StatusOpen
	item.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (id, user_id, kind, title, description, category, image_url,
		   image_hash, date_occurred, latitude, longitude, reward, qr_token, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, item.Kind, item.Title, item.Description, item.Category,
		item.ImageURL, item.ImageHash, item.DateOccurred, item.Latitude, item.Longitude,
		item.Reward, item.QRToken, item.Status)
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to insert item: %w", err)
	}
	return item, nil
}

func (s *Service) GetItem(ctx context.Context, itemID string) (models.Item, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ?", itemID)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return models.Item{}, ErrNotFound
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to query item: %w", err)
	}
	return item, nil
}

// GetItemByQRToken resolves a scanned QR token to its item.
func (s *Service) GetItemByQRToken(ctx context.Context, token string) (models.Item, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE qr_token = ? AND qr_token != ''", token)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return models.Item{}, ErrNotFound
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to query item by qr token: %w", err)
	}
	return item, nil
}

// HasRecentDuplicate reports whether the user already posted the same item
// (same title, category and kind) within the given window.
func (s *Service) HasRecentDuplicate(ctx context.Context, userID, title, category string, kind models.ItemKind, window time.Duration) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM items
		 WHERE user_id = ? AND title = ? AND category = ? AND kind = ? AND created_at >= ?
		 LIMIT 1`,
		userID, title, category, kind, time.Now().Add(-window)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check for duplicate item: %w", err)
	}
	return true, nil
}

// ItemFilter narrows ListItems. Zero values mean "no filter".
type ItemFilter struct {
	Kind            models.ItemKind
	Category        string
	Day             time.Time
	IncludeArchived bool
	Limit           int
}

// ListItems returns newest-first items matching the filter.
func (s *Service) ListItems(ctx context.Context, filter ItemFilter) ([]models.Item, error) {
	query := "SELECT " + itemColumns + " FROM items WHERE 1=1"
	args := []any{}

	if filter.Kind != "" {
		query += " AND kind = ?"
		args = append(args, filter.Kind)
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if !filter.IncludeArchived {
		query += " AND status != ?"
		args = append(args, models.StatusArchived)
	}
	if !filter.Day.IsZero() {
		query += " AND date_occurred >= ? AND date_occurred < ?"
		dayStart := filter.Day.Truncate(24 * time.Hour)
		args = append(args, dayStart, dayStart.Add(24*time.Hour))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 300
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// FindOpenItemsByKind returns up to limit OPEN items of the given kind, the
// candidate set for one matching pass.
func (s *Service) FindOpenItemsByKind(ctx context.Context, kind models.ItemKind, limit int) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE kind = ? AND status = ? LIMIT ?",
		kind, models.StatusOpen, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query open items: %w", err)
	}
	defer rows.Close()

	items := make([]models.Item, 0, limit)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SetItemStatus moves an item to a new lifecycle state.
func (s *Service) SetItemStatus(ctx context.Context, itemID string, status models.ItemStatus) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE items SET status = ? WHERE id = ?", status, itemID)
	if err != nil {
		return fmt.Errorf("failed to update item status: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ArchiveStaleItems archives OPEN items created before the cutoff and
// returns how many were archived.
func (s *Service) ArchiveStaleItems(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE items SET status = ? WHERE status = ? AND created_at < ?",
		models.StatusArchived, models.StatusOpen, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to archive stale items: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return rows, nil
}

// NewQRToken generates a fresh scan token.
func NewQRToken() string {
	return uuid.NewString()
}
