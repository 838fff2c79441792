package middleware

import (
	"context"
	"strings"
	"time"

	"turmeric-trace/domain"
	"turmeric-trace/internal/api/presenters"
	"turmeric-trace/internal/utils"
	"turmeric-trace/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	SessionCookie = "session"

	localSession = "session"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(userService user.UserService) fiber.Handler
		RoleGate(roles ...string) fiber.Handler
		RequestScope(timeout time.Duration) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	origins := utils.GetConfig("CORS_ORIGINS")
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowCredentials: origins != "*",
	})
}

// AuthMiddleware resolves the bearer token, or the session cookie when no
// header is sent, into a domain.Session stored on the request.
func (m *middleware) AuthMiddleware(userService user.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		session, err := userService.ResolveSession(c.UserContext(), token)
		if err != nil {
			log.Warnf("rejecting session: %v", err)
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageSessionExpired, err)
		}

		c.Locals(localSession, session)
		c.Locals("user_id", session.UserID)
		c.Locals("role", session.Role)
		return c.Next()
	}
}

// RoleGate stops callers whose role is not listed before any handler runs.
func (m *middleware) RoleGate(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := CurrentSession(c)
		if !ok {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}
		if !session.HasRole(roles...) {
			return presenters.ErrorResponseWithData(c, fiber.StatusForbidden, domain.MessageUserNotAllowed, domain.ErrUserNotAllowed,
				fiber.Map{"redirect": domain.UnauthorizedPath})
		}
		return c.Next()
	}
}

// RequestScope bounds every backend call made while serving the request.
// The context is cancelled once the handler chain returns.
func (m *middleware) RequestScope(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()

		c.SetUserContext(ctx)
		return c.Next()
	}
}

func CurrentSession(c *fiber.Ctx) (domain.Session, bool) {
	session, ok := c.Locals(localSession).(domain.Session)
	return session, ok
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if found && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return c.Cookies(SessionCookie)
}
