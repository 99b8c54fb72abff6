package domain

import "time"

type UserRole string

const (
	UserRoleDonor    UserRole = "donor"
	UserRoleOrgAdmin UserRole = "org_admin"
	UserRoleAdmin    UserRole = "admin"
)

// Valid reports whether r is one of the known roles
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleDonor, UserRoleOrgAdmin, UserRoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
