package user

import (
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the system (matches user_role enum)
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// KYCStatus represents the identity verification status reported by the
// external KYC provider. The platform only stores and reads it.
type KYCStatus string

const (
	KYCUnverified KYCStatus = "unverified"
	KYCPending    KYCStatus = "pending"
	KYCVerified   KYCStatus = "verified"
	KYCRejected   KYCStatus = "rejected"
)

// User represents a user account (matches users table)
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Role         Role      `db:"role" json:"role"`
	KYCStatus    KYCStatus `db:"kyc_status" json:"kyc_status"`
	IsSuspended  bool      `db:"is_suspended" json:"is_suspended"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsAdmin returns true if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsActive returns true if user is not suspended
func (u *User) IsActive() bool {
	return !u.IsSuspended
}

// CanCreateCagnotte returns true if user may create campaigns
func (u *User) CanCreateCagnotte() bool {
	return u.IsActive()
}
