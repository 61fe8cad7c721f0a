package models

import "time"

// Role distinguishes the customer ordering surface from the provider
// dashboard surface. One account can hold both roles.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "service_provider"
)

type User struct {
	ID        string    `json:"id"`
	AuthSub   string    `json:"auth_sub"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Roles     []Role    `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// ProviderProfile is the seller-side profile attached to a user with the
// service_provider role.
type ProviderProfile struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Category    string  `json:"category,omitempty"`
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
}

func (u *User) HasRole(r Role) bool {
	for _, role := range u.Roles {
		if role == r {
			return true
		}
	}
	return false
}
