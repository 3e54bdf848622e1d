package cagnotte

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the campaign lifecycle status
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// Cagnotte represents a fundraising campaign
type Cagnotte struct {
	ID              uuid.UUID `db:"id" json:"id"`
	CreatorID       uuid.UUID `db:"creator_id" json:"creator_id"`
	Title           string    `db:"title" json:"title"`
	Description     string    `db:"description" json:"description"`
	GoalAmount      float64   `db:"goal_amount" json:"goal_amount"`
	CollectedAmount float64   `db:"collected_amount" json:"collected_amount"`
	Status          Status    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// IsActive returns true if the campaign accepts donations
func (c *Cagnotte) IsActive() bool {
	return c.Status == StatusActive
}

// IsOwnedBy returns true if the given user created the campaign
func (c *Cagnotte) IsOwnedBy(userID uuid.UUID) bool {
	return c.CreatorID == userID
}
