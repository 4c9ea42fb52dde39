package domain

import "time"

// UserRole enumerates platform roles.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleTechnician UserRole = "TECHNICIAN"
	RoleClient     UserRole = "CLIENT"
)

// User is an authenticated platform account. Users act as the audit
// principals behind manual assignments and state transitions.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
