package handlers

import (
	"turmeric-trace/domain"
	"turmeric-trace/internal/api/presenters"
	"turmeric-trace/pkg/notification"

	"github.com/gofiber/fiber/v2"
)

type (
	NotificationHandler interface {
		GetNotifications(c *fiber.Ctx) error
		Dismiss(c *fiber.Ctx) error
		DismissAll(c *fiber.Ctx) error
	}

	notificationHandler struct {
		notificationService notification.NotificationService
	}
)

func NewNotificationHandler(notificationService notification.NotificationService) NotificationHandler {
	return &notificationHandler{notificationService: notificationService}
}

func (h *notificationHandler) GetNotifications(c *fiber.Ctx) error {
	res, err := h.notificationService.GetNotifications(c.UserContext(), currentSession(c), pageQuery(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetNotifications, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetNotifications)
}

func (h *notificationHandler) Dismiss(c *fiber.Ctx) error {
	res, err := h.notificationService.Dismiss(c.UserContext(), currentSession(c), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedDismissNotification, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDismissNotification)
}

func (h *notificationHandler) DismissAll(c *fiber.Ctx) error {
	res, err := h.notificationService.DismissAll(c.UserContext(), currentSession(c))
	if err != nil {
		return failure(c, domain.MessageFailedDismissNotification, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDismissNotifications)
}
