// internal/domain/user/entity.go
package user

import (
	"strings"

	"github.com/google/uuid"
)

// Role of an authenticated shopper
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// AuthUser is the profile kept for a logged-in session
type AuthUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AuthState is the persisted shape of an AuthStore
type AuthState struct {
	IsAuthenticated bool      `json:"is_authenticated"`
	User            *AuthUser `json:"user"`
}

// newAuthUser derives a profile from an email address. The name is the local
// part before '@' and any address containing "admin" gets the admin role.
func newAuthUser(email string) *AuthUser {
	name, _, _ := strings.Cut(email, "@")

	role := RoleCustomer
	if strings.Contains(email, "admin") {
		role = RoleAdmin
	}

	return &AuthUser{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
		Role:  role,
	}
}

// IsAdmin reports whether the user has the admin role
func (u *AuthUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// GetDisplayName returns the name, or the email when the name is empty
func (u *AuthUser) GetDisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
