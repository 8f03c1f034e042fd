package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"campustrace/models"
)

// Stats aggregates item counts for the admin dashboard: totals per category,
// per rounded coordinate cell, per month, and the most reported LOST
// category.
func (s *Service) Stats(ctx context.Context) (models.AdminStats, error) {
	stats := models.AdminStats{
		MostLostCategory: "N/A",
		CategoryCounts:   make(map[string]int),
		Hotspots:         make(map[string]int),
		Monthly:          make(map[string]int),
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT category, COUNT(*) FROM items GROUP BY category")
	if err != nil {
		return stats, fmt.Errorf("failed to count categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return stats, fmt.Errorf("failed to scan category count: %w", err)
		}
		stats.CategoryCounts[category] = count
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}

	// Coordinates are rounded to 3 decimals (~110 m cells).
	hotRows, err := s.db.QueryContext(ctx,
		`SELECT CONCAT(ROUND(latitude, 3), ',', ROUND(longitude, 3)), COUNT(*)
		 FROM items GROUP BY 1`)
	if err != nil {
		return stats, fmt.Errorf("failed to count hotspots: %w", err)
	}
	defer hotRows.Close()
	for hotRows.Next() {
		var cell string
		var count int
		if err := hotRows.Scan(&cell, &count); err != nil {
			return stats, fmt.Errorf("failed to scan hotspot: %w", err)
		}
		stats.Hotspots[cell] = count
	}
	if err := hotRows.Err(); err != nil {
		return stats, err
	}

	monthRows, err := s.db.QueryContext(ctx,
		`SELECT DATE_FORMAT(created_at, '%Y-%m'), COUNT(*) FROM items GROUP BY 1`)
	if err != nil {
		return stats, fmt.Errorf("failed to count monthly items: %w", err)
	}
	defer monthRows.Close()
	for monthRows.Next() {
		var month string
		var count int
		if err := monthRows.Scan(&month, &count); err != nil {
			return stats, fmt.Errorf("failed to scan monthly count: %w", err)
		}
		stats.Monthly[month] = count
	}
	if err := monthRows.Err(); err != nil {
		return stats, err
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT category FROM items WHERE kind = ?
		 GROUP BY category ORDER BY COUNT(*) DESC LIMIT 1`,
		models.KindLost).Scan(&stats.MostLostCategory)
	if err != nil && err != sql.ErrNoRows {
		return stats, fmt.Errorf("failed to find most lost category: %w", err)
	}

	return stats, nil
}

// ExportRow is one line of the admin CSV export.
type ExportRow struct {
	ID        string
	Kind      models.ItemKind
	Title     string
	Category  string
	Status    models.ItemStatus
	Latitude  float64
	Longitude float64
	UserEmail string
	CreatedAt time.Time
}

// ExportItems returns up to 2000 newest items joined with reporter emails.
func (s *Service) ExportItems(ctx context.Context) ([]ExportRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT i.id, i.kind, i.title, i.category, i.status, i.latitude, i.longitude,
		        u.email, i.created_at
		 FROM items i JOIN users u ON u.id = i.user_id
		 ORDER BY i.created_at DESC LIMIT 2000`)
	if err != nil {
		return nil, fmt.Errorf("failed to query export rows: %w", err)
	}
	defer rows.Close()

	export := make([]ExportRow, 0)
	for rows.Next() {
		var r ExportRow
		if err := rows.Scan(&r.ID, &r.Kind, &r.Title, &r.Category, &r.Status,
			&r.Latitude, &r.Longitude, &r.UserEmail, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		export = append(export, r)
	}
	return export, rows.Err()
}
