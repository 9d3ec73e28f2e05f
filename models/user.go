package models

import "time"

// Role is the closed set of account roles. Authorization decisions switch
// exhaustively over these values; unknown roles never pass a check.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "building_manager"
	RoleResident Role = "resident"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleResident:
		return true
	}
	return false
}

// IsStaff reports whether the role carries manager-level decision authority.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleManager
}

// Caller describes the authenticated actor for an operation. Handlers build
// it from JWT claims and pass it down explicitly; no package reads identity
// from shared state.
type Caller struct {
	ID   string
	Role Role
}

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Phone         string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Name          string    `json:"name,omitempty" bson:"name,omitempty"`
	PasswordHash  string    `json:"-" bson:"password_hash"`
	Role          Role      `json:"role" bson:"role"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
	LastLogin     time.Time `json:"lastLogin,omitempty" bson:"last_login,omitempty"`
}
