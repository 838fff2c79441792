package user

import (
	"context"
	"errors"
	"strconv"
	"time"

	"turmeric-trace/domain"
	"turmeric-trace/entities"
	"turmeric-trace/internal/utils"
	"turmeric-trace/pkg/jwt"
	"turmeric-trace/pkg/strapi"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Logout(ctx context.Context, sessionID string) error
		ResolveSession(ctx context.Context, token string) (domain.Session, error)
		Me(ctx context.Context, session domain.Session) (domain.UserProfile, error)
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
		GetPreferences(ctx context.Context, userID string) (domain.PreferencesResponse, error)
		SavePreferences(ctx context.Context, userID string, req domain.PreferencesRequest) (domain.PreferencesResponse, error)
	}

	userService struct {
		userRepository UserRepository
		backend        strapi.Backend
		jwtService     jwt.JWTService
		sealer         sealer
		now            func() time.Time
	}
)

// NewUserService fails when AES_KEY is empty; sealed backend tokens would
// otherwise be readable with a well-known key.
func NewUserService(userRepository UserRepository, backend strapi.Backend, jwtService jwt.JWTService) (UserService, error) {
	return newUserService(userRepository, backend, jwtService, utils.GetConfig("AES_KEY"))
}

func newUserService(userRepository UserRepository, backend strapi.Backend, jwtService jwt.JWTService, sealKey string) (*userService, error) {
	s, err := newSealer(sealKey)
	if err != nil {
		return nil, err
	}
	return &userService{
		userRepository: userRepository,
		backend:        backend,
		jwtService:     jwtService,
		sealer:         s,
		now:            time.Now,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	auth, err := strapi.Login(ctx, s.backend, req.Identifier, req.Password)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	me, err := strapi.Me(ctx, s.backend, auth.JWT)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	role := domain.NormalizeRole(me.RoleName())
	if role == "" {
		return domain.LoginResponse{}, domain.ErrUnknownRole
	}

	sealed, err := s.sealer.Seal([]byte(auth.JWT))
	if err != nil {
		return domain.LoginResponse{}, err
	}

	sessionID := uuid.New()
	userID := strconv.Itoa(me.ID)
	token, expiresAt, err := s.jwtService.GenerateSessionToken(jwt.SessionClaims{
		SessionID: sessionID.String(),
		UserID:    userID,
		Role:      role,
	})
	if err != nil {
		return domain.LoginResponse{}, err
	}

	session := &entities.Session{
		ID:          sessionID,
		UserID:      userID,
		Username:    me.Username,
		Email:       me.Email,
		Role:        role,
		SealedToken: sealed,
		ExpiresAt:   expiresAt,
	}
	if err := s.userRepository.CreateSession(ctx, session); err != nil {
		return domain.LoginResponse{}, err
	}

	log.Infof("session %s opened for user %s (%s)", sessionID, userID, role)

	return domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		Redirect:  domain.HomePath(role),
		User: domain.UserProfile{
			ID:       userID,
			Username: me.Username,
			Email:    me.Email,
			Role:     role,
		},
	}, nil
}

func (s *userService) Logout(ctx context.Context, sessionID string) error {
	return s.userRepository.RevokeSession(ctx, sessionID, s.now())
}

func (s *userService) ResolveSession(ctx context.Context, token string) (domain.Session, error) {
	claims, err := s.jwtService.ParseSessionToken(token)
	if err != nil {
		return domain.Session{}, err
	}

	row, err := s.userRepository.GetSessionByID(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Session{}, domain.ErrSessionRevoked
		}
		return domain.Session{}, err
	}
	if row.RevokedAt != nil {
		return domain.Session{}, domain.ErrSessionRevoked
	}
	if !row.ExpiresAt.After(s.now()) {
		return domain.Session{}, domain.ErrSessionExpired
	}
	if row.UserID != claims.UserID || row.Role != claims.Role {
		return domain.Session{}, domain.ErrTokenInvalid
	}

	backendToken, err := s.sealer.Open(row.SealedToken)
	if err != nil {
		return domain.Session{}, domain.ErrSessionExpired
	}

	return domain.Session{
		ID:           row.ID.String(),
		UserID:       row.UserID,
		Username:     row.Username,
		Email:        row.Email,
		Role:         row.Role,
		BackendToken: string(backendToken),
	}, nil
}

func (s *userService) Me(ctx context.Context, session domain.Session) (domain.UserProfile, error) {
	me, err := strapi.Me(ctx, s.backend, session.BackendToken)
	if err != nil {
		return domain.UserProfile{}, err
	}

	return domain.UserProfile{
		ID:       strconv.Itoa(me.ID),
		Username: me.Username,
		Email:    me.Email,
		Role:     domain.NormalizeRole(me.RoleName()),
	}, nil
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	_, err := strapi.ResetPassword(ctx, s.backend, req.Code, req.Password, req.PasswordConfirmation)
	return err
}

func (s *userService) GetPreferences(ctx context.Context, userID string) (domain.PreferencesResponse, error) {
	pref, err := s.userRepository.GetPreference(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PreferencesResponse{SidebarOpen: true}, nil
		}
		return domain.PreferencesResponse{}, err
	}
	return domain.PreferencesResponse{SidebarOpen: pref.SidebarOpen}, nil
}

func (s *userService) SavePreferences(ctx context.Context, userID string, req domain.PreferencesRequest) (domain.PreferencesResponse, error) {
	pref := &entities.UserPreference{UserID: userID, SidebarOpen: *req.SidebarOpen}
	if err := s.userRepository.SavePreference(ctx, pref); err != nil {
		return domain.PreferencesResponse{}, err
	}
	return domain.PreferencesResponse{SidebarOpen: pref.SidebarOpen}, nil
}
