// Package database holds all SQL against the MySQL store.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"campustrace/models"
)

// ErrNotFound is returned when a looked-up row does not exist.
var ErrNotFound = errors.New("not found")

// Service handles all persistence for CampusTrace.
type Service struct {
	db *sql.DB
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// CreateUser inserts a new user row. Email and student ID uniqueness is
// enforced by the schema; the caller maps duplicate errors to a 409.
func (s *Service) CreateUser(ctx context.Context, user models.User, passwordHash string) (models.User, error) {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, student_id, branch, year, role)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, passwordHash, user.StudentID, user.Branch, user.Year, user.Role)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

// UserExists reports whether a user with the given email or student ID is
// already registered.
func (s *Service) UserExists(ctx context.Context, email, studentID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE email = ? OR student_id = ? LIMIT 1",
		email, studentID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return true, nil
}

// GetUserByEmail returns the user plus their password hash for login checks.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (models.User, string, error) {
	var user models.User
	var passwordHash string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, student_id, branch, year, role, created_at
		 FROM users WHERE email = ?`, email).
		Scan(&user.ID, &user.Name, &user.Email, &passwordHash,
			&user.StudentID, &user.Branch, &user.Year, &user.Role, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, "", ErrNotFound
	}
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to query user: %w", err)
	}
	return user, passwordHash, nil
}

func (s *Service) GetUser(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, student_id, branch, year, role, created_at
		 FROM users WHERE id = ?`, userID).
		Scan(&user.ID, &user.Name, &user.Email, &user.StudentID,
			&user.Branch, &user.Year, &user.Role, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}
