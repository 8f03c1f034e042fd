package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemKind says whether a report is about something lost or something found.
type ItemKind string

const (
	KindLost  ItemKind = "LOST"
	KindFound ItemKind = "FOUND"
)

// Opposite returns the kind a matching candidate must have.
func (k ItemKind) Opposite() ItemKind {
	if k == KindLost {
		return KindFound
	}
	return KindLost
}

// ItemStatus is the lifecycle state of an item report.
type ItemStatus string

const (
	StatusOpen     ItemStatus = "OPEN"
	StatusReturned ItemStatus = "RETURNED"
	StatusArchived ItemStatus = "ARCHIVED"
)

// User represents a registered campus user.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	StudentID string    `json:"student_id"`
	Branch    string    `json:"branch"`
	Year      int       `json:"year"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// Item is a single lost or found report.
type Item struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Kind         ItemKind        `json:"kind"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	ImageURL     string          `json:"image_url,omitempty"`
	ImageHash    string          `json:"image_hash,omitempty"`
	DateOccurred time.Time       `json:"date_occurred"`
	Latitude     float64         `json:"latitude"`
	Longitude    float64         `json:"longitude"`
	Reward       decimal.Decimal `json:"reward"`
	QRToken      string          `json:"qr_token,omitempty"`
	Status       ItemStatus      `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Match is a system-suggested pairing of one LOST item with one FOUND item.
// At most one match exists per (LostItemID, FoundItemID) pair.
type Match struct {
	ID          string    `json:"id"`
	LostItemID  string    `json:"lost_item_id"`
	FoundItemID string    `json:"found_item_id"`
	Score       float64   `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MatchWithItems carries the two linked items for list responses.
type MatchWithItems struct {
	Match
	LostItem  Item `json:"lost_item"`
	FoundItem Item `json:"found_item"`
}

// Notification is addressed to a single user.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// ClaimStatus is the state of a claim-verification request.
type ClaimStatus string

const (
	ClaimPending   ClaimStatus = "PENDING"
	ClaimApproved  ClaimStatus = "APPROVED"
	ClaimRejected  ClaimStatus = "REJECTED"
	ClaimCompleted ClaimStatus = "COMPLETED"
)

// Claim is a request to take an item back, resolved by the item's reporter.
type Claim struct {
	ID          string      `json:"id"`
	ItemID      string      `json:"item_id"`
	RequesterID string      `json:"requester_id"`
	ResolverID  string      `json:"resolver_id"`
	Answers     []string    `json:"answers"`
	Status      ClaimStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Message is one chat message exchanged inside a match conversation.
type Message struct {
	ID         string    `json:"id"`
	MatchID    string    `json:"match_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Name      string `json:"name" binding:"required,min=2"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	StudentID string `json:"student_id" binding:"required,min=3"`
	Branch    string `json:"branch" binding:"required,min=2"`
	Year      int    `json:"year" binding:"required,min=1,max=6"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateItemRequest is the payload for posting a lost or found item.
type CreateItemRequest struct {
	Kind         ItemKind        `json:"kind" binding:"required,oneof=LOST FOUND"`
	Title        string          `json:"title" binding:"required,min=3"`
	Description  string          `json:"description" binding:"required,min=5"`
	Category     string          `json:"category" binding:"required,min=2"`
	ImageURL     string          `json:"image_url"`
	ImageHash    string          `json:"image_hash"`
	DateOccurred time.Time       `json:"date_occurred" binding:"required"`
	Latitude     float64         `json:"latitude" binding:"required"`
	Longitude    float64         `json:"longitude" binding:"required"`
	Reward       decimal.Decimal `json:"reward"`
	WithQR       bool            `json:"with_qr"`
}

// CreateClaimRequest carries the requester's verification answers.
type CreateClaimRequest struct {
	Answers []string `json:"answers" binding:"required,min=1,dive,min=1"`
}

// ResolveClaimRequest moves a claim through its lifecycle.
type ResolveClaimRequest struct {
	ClaimID string `json:"claim_id" binding:"required"`
	Action  string `json:"action" binding:"required,oneof=APPROVE REJECT COMPLETE"`
}

// PostMessageRequest is a single chat message payload.
type PostMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}

// AdminStats is the aggregate view for the admin dashboard.
type AdminStats struct {
	MostLostCategory string         `json:"most_lost_category"`
	CategoryCounts   map[string]int `json:"category_counts"`
	Hotspots         map[string]int `json:"hotspots"`
	Monthly          map[string]int `json:"monthly"`
}
