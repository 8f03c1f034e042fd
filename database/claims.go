package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"campustrace/models"
)

// CreateClaim stores a claim-verification request. Answers are kept as a
// JSON array in a single column.
func (s *Service) CreateClaim(ctx context.Context, claim models.Claim) (models.Claim, error) {
	claim.ID = uuid.NewString()
	claim.Status = models.ClaimPending

	answers, err := json.Marshal(claim.Answers)
	if err != nil {
		return models.Claim{}, fmt.Errorf("failed to encode claim answers: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO claims (id, item_id, requester_id, resolver_id, answers, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		claim.ID, claim.ItemID, claim.RequesterID, claim.ResolverID, string(answers), claim.Status)
	if err != nil {
		return models.Claim{}, fmt.Errorf("failed to insert claim: %w", err)
	}
	return claim, nil
}

func (s *Service) GetClaim(ctx context.Context, claimID string) (models.Claim, error) {
	var claim models.Claim
	var answers string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, item_id, requester_id, resolver_id, answers, status, created_at
		 FROM claims WHERE id = ?`, claimID).
		Scan(&claim.ID, &claim.ItemID, &claim.RequesterID, &claim.ResolverID,
			&answers, &claim.Status, &claim.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Claim{}, ErrNotFound
	}
	if err != nil {
		return models.Claim{}, fmt.Errorf("failed to query claim: %w", err)
	}

	if err := json.Unmarshal([]byte(answers), &claim.Answers); err != nil {
		return models.Claim{}, fmt.Errorf("failed to decode claim answers: %w", err)
	}
	return claim, nil
}

// SetClaimStatus moves a claim to a new state.
func (s *Service) SetClaimStatus(ctx context.Context, claimID string, status models.ClaimStatus) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE claims SET status = ? WHERE id = ?", status, claimID)
	if err != nil {
		return fmt.Errorf("failed to update claim status: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}
