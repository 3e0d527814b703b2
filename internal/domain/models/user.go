package models

import (
	"time"
)

// UserRole is the subscription tier of a user account.
type UserRole string

const (
	RoleFree  UserRole = "free"
	RolePro   UserRole = "pro"
	RoleAdmin UserRole = "admin"
)

// User is a locally persisted account synced from the identity provider.
// SubjectID is the provider's subject claim and is immutable once set.
// Accounts are provisioned lazily on first authenticated interaction and
// are never hard-deleted here.
type User struct {
	ID            string     `json:"id" db:"id"`
	SubjectID     string     `json:"subject_id" db:"subject_id"`
	Email         string     `json:"email" db:"email"`
	Name          string     `json:"name" db:"name"`
	Role          UserRole   `json:"role" db:"role"`
	EmailVerified bool       `json:"email_verified" db:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
