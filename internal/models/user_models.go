package models

import "time"

// Role names used across the marketplace. Roles are plain strings in the
// JWT claims; there is no role table beyond this enumeration.
const (
	RoleClient   = "client"
	RoleDesigner = "designer"
	RoleAdmin    = "admin"
)

// IsValidRole reports whether the given role name is one of the known roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleClient, RoleDesigner, RoleAdmin:
		return true
	default:
		return false
	}
}

// User represents an account in the system: a client, a designer or an admin.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // never serialized
	Email        string    `json:"email" db:"email"`
	FullName     *string   `json:"full_name,omitempty" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	Bio          *string   `json:"bio,omitempty" db:"bio"`
	AvatarURL    *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserSummary is the public identity attached to consultations, reviews and
// the designer directory. It intentionally exposes nothing sensitive.
type UserSummary struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name,omitempty"`
}

// DesignerListing is a directory row: public identity plus review aggregates.
type DesignerListing struct {
	UserSummary
	Bio           *string  `json:"bio,omitempty"`
	AvatarURL     *string  `json:"avatar_url,omitempty"`
	AverageRating *float64 `json:"average_rating,omitempty"`
	ReviewCount   int      `json:"review_count"`
}

// Principal is the authenticated caller's identity and role, resolved once
// at the request boundary by the auth middleware and passed by value into
// every service operation. Services never re-derive the role from storage.
type Principal struct {
	UserID   int64
	Username string
	Role     string
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
