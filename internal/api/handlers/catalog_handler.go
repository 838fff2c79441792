package handlers

import (
	"turmeric-trace/domain"
	"turmeric-trace/internal/api/presenters"
	"turmeric-trace/pkg/catalog"

	"github.com/gofiber/fiber/v2"
)

type (
	CatalogHandler interface {
		GetCatalog(c *fiber.Ctx) error
		Trace(c *fiber.Ctx) error
		TraceQR(c *fiber.Ctx) error
	}

	catalogHandler struct {
		catalogService catalog.CatalogService
	}
)

func NewCatalogHandler(catalogService catalog.CatalogService) CatalogHandler {
	return &catalogHandler{catalogService: catalogService}
}

func (h *catalogHandler) GetCatalog(c *fiber.Ctx) error {
	res, err := h.catalogService.GetCatalog(c.UserContext(), pageQuery(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetCatalog, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCatalog)
}

func (h *catalogHandler) Trace(c *fiber.Ctx) error {
	res, err := h.catalogService.Trace(c.UserContext(), c.Params("code"))
	if err != nil {
		return failure(c, domain.MessageFailedGetTrace, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTrace)
}

func (h *catalogHandler) TraceQR(c *fiber.Ctx) error {
	png, err := h.catalogService.TraceQR(c.UserContext(), c.Params("code"))
	if err != nil {
		return failure(c, domain.MessageFailedGenerateQR, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.Status(fiber.StatusOK).Send(png)
}
