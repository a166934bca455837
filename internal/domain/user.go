package domain

import (
	"strings"
	"time"
)

// Role is the coarse authorization level assigned to a user.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// ParseRole maps a raw role string to one of the known roles. An empty
// (or whitespace-only) input falls back to RoleUser; anything else that
// is not a known role is rejected.
func ParseRole(raw string) (Role, bool) {
	switch strings.TrimSpace(raw) {
	case "":
		return RoleUser, true
	case string(RoleUser):
		return RoleUser, true
	case string(RoleAdmin):
		return RoleAdmin, true
	default:
		return "", false
	}
}

// UnknownAuthor is the display name shown for users who never set one.
const UnknownAuthor = "Unknown"

// User represents a registered account.
type User struct {
	ID           int64
	Email        string
	Username     *string
	PasswordHash string
	Token        string
	Role         Role
	CreatedAt    time.Time
}

// DisplayName returns the user's display name, or the fixed placeholder
// when none was provided at signup.
func (u *User) DisplayName() string {
	if u.Username == nil || strings.TrimSpace(*u.Username) == "" {
		return UnknownAuthor
	}
	return *u.Username
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
