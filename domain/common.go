package domain

import (
	"errors"
	"strings"
)

const (
	RoleFarmer           = "farmer"
	RoleFactory          = "factory"
	RoleQualityInspector = "quality_inspector"
	RoleAdmin            = "admin"

	UnauthorizedPath = "/unauthorized"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedValidation     = "please complete the required fields"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageUserNotAllowed       = "user not allowed"
	MessageSessionExpired       = "session expired, please log in again"
	MessageBackendUnavailable   = "content backend unavailable, please retry"

	ErrParseID         = errors.New("failed to parse id")
	ErrUserNotAllowed  = errors.New("user not allowed")
	ErrTokenNotFound   = errors.New("failed to token not found")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrSessionExpired  = errors.New("session expired")
	ErrSessionRevoked  = errors.New("session revoked")
	ErrRecordNotFound  = errors.New("record not found")
	ErrUnknownRole     = errors.New("account has no dashboard role")
	ErrInvalidDate     = errors.New("invalid date, expected YYYY-MM-DD")
	ErrNotOwner        = errors.New("record does not belong to the current user")
	ErrFeatureDisabled = errors.New("feature is not configured")
)

// Session is the authenticated caller, resolved once per request.
type Session struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	BackendToken string `json:"-"`
}

func (s Session) HasRole(roles ...string) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

// NormalizeRole maps backend role names onto dashboard roles.
func NormalizeRole(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	switch key {
	case "farmer":
		return RoleFarmer
	case "factory":
		return RoleFactory
	case "qualityinspector", "inspector", "lab":
		return RoleQualityInspector
	case "admin", "administrator":
		return RoleAdmin
	}
	return ""
}

// HomePath is the dashboard a role lands on after login.
func HomePath(role string) string {
	switch role {
	case RoleFarmer:
		return "/farmer/dashboard"
	case RoleFactory:
		return "/factory/dashboard"
	case RoleQualityInspector:
		return "/inspector/dashboard"
	case RoleAdmin:
		return "/admin/dashboard"
	}
	return UnauthorizedPath
}

type PageQuery struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
	Status string `query:"status"`
}
