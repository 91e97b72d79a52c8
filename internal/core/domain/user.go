package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of actor categories in the marketplace.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleTasker   Role = "tasker"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleTasker, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts a wire-level role string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// User models an account in the marketplace.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CountryCode  string    `json:"country_code,omitempty"`
	Role         Role      `json:"role"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserPatch is a shallow partial update of the mutable profile fields.
// Nil pointers leave the corresponding field untouched.
type UserPatch struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	CountryCode *string `json:"country_code,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// Apply merges the patch into the user in place.
func (u *User) Apply(p UserPatch) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.CountryCode != nil {
		u.CountryCode = *p.CountryCode
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
}

// Features is the coarse capability set a role unlocks in the app.
type Features struct {
	CanPlaceOrders    bool `json:"can_place_orders"`
	CanAcceptJobs     bool `json:"can_accept_jobs"`
	CanManageListings bool `json:"can_manage_listings"`
	CanModerate       bool `json:"can_moderate"`
}

// FeaturesFor maps a role to its capability set. Unknown roles get nothing.
func FeaturesFor(r Role) Features {
	switch r {
	case RoleCustomer:
		return Features{CanPlaceOrders: true}
	case RoleTasker:
		return Features{CanAcceptJobs: true}
	case RoleVendor:
		return Features{CanManageListings: true}
	case RoleAdmin:
		return Features{CanPlaceOrders: true, CanAcceptJobs: true, CanManageListings: true, CanModerate: true}
	default:
		return Features{}
	}
}
