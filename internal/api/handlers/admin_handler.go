package handlers

import (
	"turmeric-trace/domain"
	"turmeric-trace/internal/api/presenters"
	"turmeric-trace/pkg/admin"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		GetUsers(c *fiber.Ctx) error

		GetReferences(c *fiber.Ctx) error
		CreateReference(c *fiber.Ctx) error
		UpdateReference(c *fiber.Ctx) error
		DeleteReference(c *fiber.Ctx) error

		CreateNotification(c *fiber.Ctx) error
		GetDashboard(c *fiber.Ctx) error
	}

	adminHandler struct {
		adminService admin.AdminService
		validator    *validator.Validate
	}
)

func NewAdminHandler(adminService admin.AdminService, validator *validator.Validate) AdminHandler {
	return &adminHandler{
		adminService: adminService,
		validator:    validator,
	}
}

func (h *adminHandler) GetUsers(c *fiber.Ctx) error {
	res, err := h.adminService.GetUsers(c.UserContext(), currentSession(c), pageQuery(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetUsers, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUsers)
}

// GetReferences also backs the read-only lookups other roles use to fill
// their lab and factory pickers.
func (h *adminHandler) GetReferences(c *fiber.Ctx) error {
	collection := c.Params("collection")
	if _, err := admin.NewReferenceRequest(collection); err != nil {
		return failure(c, domain.MessageFailedGetReference, err)
	}

	res, err := h.adminService.GetReferences(c.UserContext(), currentSession(c), collection, pageQuery(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetReference, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReference)
}

func (h *adminHandler) CreateReference(c *fiber.Ctx) error {
	collection := c.Params("collection")
	req, err := admin.NewReferenceRequest(collection)
	if err != nil {
		return failure(c, domain.MessageFailedCreateReference, err)
	}
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedCreateReference); !ok {
		return err
	}

	res, err := h.adminService.CreateReference(c.UserContext(), currentSession(c), collection, req)
	if err != nil {
		return failure(c, domain.MessageFailedCreateReference, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateReference)
}

func (h *adminHandler) UpdateReference(c *fiber.Ctx) error {
	collection := c.Params("collection")
	req, err := admin.NewReferenceRequest(collection)
	if err != nil {
		return failure(c, domain.MessageFailedUpdateReference, err)
	}
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedUpdateReference); !ok {
		return err
	}

	res, err := h.adminService.UpdateReference(c.UserContext(), currentSession(c), collection, c.Params("id"), req)
	if err != nil {
		return failure(c, domain.MessageFailedUpdateReference, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateReference)
}

func (h *adminHandler) DeleteReference(c *fiber.Ctx) error {
	collection := c.Params("collection")
	if _, err := admin.NewReferenceRequest(collection); err != nil {
		return failure(c, domain.MessageFailedDeleteReference, err)
	}

	res, err := h.adminService.DeleteReference(c.UserContext(), currentSession(c), collection, c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedDeleteReference, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteReference)
}

func (h *adminHandler) CreateNotification(c *fiber.Ctx) error {
	req := new(domain.NotificationRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedCreateNotification); !ok {
		return err
	}

	res, err := h.adminService.CreateNotification(c.UserContext(), currentSession(c), *req)
	if err != nil {
		return failure(c, domain.MessageFailedCreateNotification, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateNotification)
}

func (h *adminHandler) GetDashboard(c *fiber.Ctx) error {
	res, err := h.adminService.GetDashboard(c.UserContext(), currentSession(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetAdminStats, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetAdminStats)
}
