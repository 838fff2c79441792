package entities

import (
	"time"

	"github.com/google/uuid"
)

// User is the content backend user as returned by /api/users/me?populate=*.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Confirmed bool      `json:"confirmed"`
	Blocked   bool      `json:"blocked"`
	UserRole  string    `json:"user_role"`
	Role      *UserRole `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserRole struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// RoleName prefers the explicit user_role field over the permission role.
func (u User) RoleName() string {
	if u.UserRole != "" {
		return u.UserRole
	}
	if u.Role != nil {
		return u.Role.Name
	}
	return ""
}

type Session struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID      string     `gorm:"index" json:"user_id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	SealedToken []byte     `json:"-"`
	ExpiresAt   time.Time  `json:"expires_at"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	Timestamp
}

type UserPreference struct {
	UserID      string `gorm:"primary_key" json:"user_id"`
	SidebarOpen bool   `json:"sidebar_open"`
	Timestamp
}

type DismissedNotification struct {
	UserID         string `gorm:"primary_key" json:"user_id"`
	NotificationID string `gorm:"primary_key" json:"notification_id"`
	Timestamp
}
