package database

import (
	"database/sql"
	"fmt"
)

// InitializeSchema creates the tables if they are missing. The unique key on
// matches (lost_item_id, found_item_id) is what makes the match upsert
// idempotent under concurrent evaluation.
func InitializeSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			student_id VARCHAR(64) NOT NULL UNIQUE,
			branch VARCHAR(128) NOT NULL,
			year INT NOT NULL,
			role VARCHAR(16) NOT NULL DEFAULT 'STUDENT',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			kind ENUM('LOST', 'FOUND') NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			category VARCHAR(128) NOT NULL,
			image_url VARCHAR(512) NOT NULL DEFAULT '',
			image_hash VARCHAR(128) NOT NULL DEFAULT '',
			date_occurred TIMESTAMP NOT NULL,
			latitude DOUBLE NOT NULL,
			longitude DOUBLE NOT NULL,
			reward DECIMAL(10,2) NOT NULL DEFAULT 0,
			qr_token VARCHAR(36) NOT NULL DEFAULT '',
			status ENUM('OPEN', 'RETURNED', 'ARCHIVED') NOT NULL DEFAULT 'OPEN',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_items_kind_status (kind, status),
			INDEX idx_items_qr_token (qr_token),
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			id VARCHAR(36) PRIMARY KEY,
			lost_item_id VARCHAR(36) NOT NULL,
			found_item_id VARCHAR(36) NOT NULL,
			score DOUBLE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_matches_pair (lost_item_id, found_item_id),
			FOREIGN KEY (lost_item_id) REFERENCES items(id),
			FOREIGN KEY (found_item_id) REFERENCES items(id)
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			title VARCHAR(255) NOT NULL,
			body TEXT NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_notifications_user (user_id, created_at),
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS claims (
			id VARCHAR(36) PRIMARY KEY,
			item_id VARCHAR(36) NOT NULL,
			requester_id VARCHAR(36) NOT NULL,
			resolver_id VARCHAR(36) NOT NULL,
			answers TEXT NOT NULL,
			status ENUM('PENDING', 'APPROVED', 'REJECTED', 'COMPLETED') NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (item_id) REFERENCES items(id),
			FOREIGN KEY (requester_id) REFERENCES users(id)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id VARCHAR(36) PRIMARY KEY,
			match_id VARCHAR(36) NOT NULL,
			sender_id VARCHAR(36) NOT NULL,
			receiver_id VARCHAR(36) NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_messages_match (match_id, created_at),
			FOREIGN KEY (match_id) REFERENCES matches(id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}
