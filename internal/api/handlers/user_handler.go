package handlers

import (
	"time"

	"turmeric-trace/domain"
	"turmeric-trace/internal/api/presenters"
	"turmeric-trace/internal/middleware"
	"turmeric-trace/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Login(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		ResetPassword(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
		GetPreferences(c *fiber.Ctx) error
		SavePreferences(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedLogin); !ok {
		return err
	}

	res, err := h.userService.Login(c.UserContext(), *req)
	if err != nil {
		if errorStatus(err) == fiber.StatusUnauthorized {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedLogin, err)
		}
		return failure(c, domain.MessageFailedLogin, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    res.Token,
		Path:     "/",
		Expires:  time.Unix(res.ExpiresAt, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *userHandler) Logout(c *fiber.Ctx) error {
	s := currentSession(c)

	if err := h.userService.Logout(c.UserContext(), s.ID); err != nil {
		return failure(c, domain.MessageFailedLogout, err)
	}

	c.ClearCookie(middleware.SessionCookie)
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessLogout)
}

func (h *userHandler) ResetPassword(c *fiber.Ctx) error {
	req := new(domain.ResetPasswordRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedResetPassword); !ok {
		return err
	}

	if err := h.userService.ResetPassword(c.UserContext(), *req); err != nil {
		return failure(c, domain.MessageFailedResetPassword, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessResetPassword)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	res, err := h.userService.Me(c.UserContext(), currentSession(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *userHandler) GetPreferences(c *fiber.Ctx) error {
	s := currentSession(c)

	res, err := h.userService.GetPreferences(c.UserContext(), s.UserID)
	if err != nil {
		return failure(c, domain.MessageFailedGetPreferences, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetPreferences)
}

func (h *userHandler) SavePreferences(c *fiber.Ctx) error {
	s := currentSession(c)
	req := new(domain.PreferencesRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedSavePreferences); !ok {
		return err
	}

	res, err := h.userService.SavePreferences(c.UserContext(), s.UserID, *req)
	if err != nil {
		return failure(c, domain.MessageFailedSavePreferences, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSavePreferences)
}
