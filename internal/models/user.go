package models

import "time"

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleArtist Role = "artist"
	RoleCommon Role = "common"
)

// ParseRole converts s into a Role. An empty string yields RoleCommon.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "":
		return RoleCommon, true
	case RoleAdmin, RoleArtist, RoleCommon:
		return Role(s), true
	default:
		return "", false
	}
}

// CanPublish reports whether the role may create and manage songs.
func (r Role) CanPublish() bool {
	switch r {
	case RoleAdmin, RoleArtist:
		return true
	case RoleCommon:
		return false
	default:
		return false
	}
}

// IsAdmin reports whether the role bypasses per-resource ownership on songs and ratings.
func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleArtist, RoleCommon:
		return false
	default:
		return false
	}
}

// User represents an account of the catalog.
type User struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username       string    `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	HashedPassword string    `json:"-" gorm:"type:varchar(255);not null"`
	Role           Role      `json:"role" gorm:"type:varchar(16);not null;default:common"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
