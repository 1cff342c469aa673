package domain

import "time"

// User roles
const (
	RoleRetailer = "retailer"
	RoleAdmin    = "admin"
	RoleAPIKey   = "api_key"
)

// User represents a retailer account. PasswordHash never crosses the
// repository boundary; projections go through Public().
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	BusinessName string     `json:"business_name"`
	PasswordHash string     `json:"password_hash"`
	Role         string     `json:"role"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// PublicUser is the outward projection of a User with credentials elided.
type PublicUser struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	BusinessName string     `json:"business_name"`
	Role         string     `json:"role"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		BusinessName: u.BusinessName,
		Role:         u.Role,
		Active:       u.Active,
		CreatedAt:    u.CreatedAt,
		LastLogin:    u.LastLogin,
	}
}
