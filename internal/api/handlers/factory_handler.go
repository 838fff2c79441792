package handlers

import (
	"bytes"
	"fmt"
	"time"

	"turmeric-trace/domain"
	"turmeric-trace/internal/api/presenters"
	"turmeric-trace/pkg/factory"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FactoryHandler interface {
		GetSubmissions(c *fiber.Ctx) error
		DecideSubmission(c *fiber.Ctx) error

		GetProcessings(c *fiber.Ctx) error
		CreateProcessing(c *fiber.Ctx) error
		UpdateProcessing(c *fiber.Ctx) error
		DeleteProcessing(c *fiber.Ctx) error

		Export(c *fiber.Ctx) error
		GetExports(c *fiber.Ctx) error
		DownloadExports(c *fiber.Ctx) error

		PublishQR(c *fiber.Ctx) error
		ShareTrace(c *fiber.Ctx) error

		GetDashboard(c *fiber.Ctx) error
	}

	factoryHandler struct {
		factoryService factory.FactoryService
		validator      *validator.Validate
	}
)

func NewFactoryHandler(factoryService factory.FactoryService, validator *validator.Validate) FactoryHandler {
	return &factoryHandler{
		factoryService: factoryService,
		validator:      validator,
	}
}

func (h *factoryHandler) GetSubmissions(c *fiber.Ctx) error {
	res, err := h.factoryService.GetSubmissions(c.UserContext(), currentSession(c), pageQuery(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetFactorySubmissions, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFactorySubmissions)
}

func (h *factoryHandler) DecideSubmission(c *fiber.Ctx) error {
	id := c.Params("id")
	req := new(domain.SubmissionDecisionRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedDecideSubmission); !ok {
		return err
	}

	res, err := h.factoryService.DecideSubmission(c.UserContext(), currentSession(c), id, *req)
	if err != nil {
		return failure(c, domain.MessageFailedDecideSubmission, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDecideSubmission)
}

func (h *factoryHandler) GetProcessings(c *fiber.Ctx) error {
	res, err := h.factoryService.GetProcessings(c.UserContext(), currentSession(c), pageQuery(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetProcessings, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProcessings)
}

func (h *factoryHandler) CreateProcessing(c *fiber.Ctx) error {
	req := new(domain.ProcessingRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedCreateProcessing); !ok {
		return err
	}

	res, err := h.factoryService.CreateProcessing(c.UserContext(), currentSession(c), *req)
	if err != nil {
		return failure(c, domain.MessageFailedCreateProcessing, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateProcessing)
}

func (h *factoryHandler) UpdateProcessing(c *fiber.Ctx) error {
	id := c.Params("id")
	req := new(domain.ProcessingRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedUpdateProcessing); !ok {
		return err
	}

	res, err := h.factoryService.UpdateProcessing(c.UserContext(), currentSession(c), id, *req)
	if err != nil {
		return failure(c, domain.MessageFailedUpdateProcessing, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateProcessing)
}

func (h *factoryHandler) DeleteProcessing(c *fiber.Ctx) error {
	res, err := h.factoryService.DeleteProcessing(c.UserContext(), currentSession(c), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedDeleteProcessing, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteProcessing)
}

func (h *factoryHandler) Export(c *fiber.Ctx) error {
	id := c.Params("id")
	req := new(domain.ExportRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedExport); !ok {
		return err
	}

	res, err := h.factoryService.Export(c.UserContext(), currentSession(c), id, *req)
	if err != nil {
		return failure(c, domain.MessageFailedExport, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessExport)
}

func (h *factoryHandler) GetExports(c *fiber.Ctx) error {
	res, err := h.factoryService.GetExports(c.UserContext(), currentSession(c), pageQuery(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetExports, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetExports)
}

// DownloadExports buffers the whole file so a failed fetch still gets a
// JSON error instead of a truncated CSV.
func (h *factoryHandler) DownloadExports(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.factoryService.WriteExportsCSV(c.UserContext(), currentSession(c), &buf); err != nil {
		return failure(c, domain.MessageFailedGetExports, err)
	}

	filename := fmt.Sprintf("export-history-%s.csv", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

func (h *factoryHandler) PublishQR(c *fiber.Ctx) error {
	res, err := h.factoryService.PublishQR(c.UserContext(), currentSession(c), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedPublishQR, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessPublishQR)
}

func (h *factoryHandler) ShareTrace(c *fiber.Ctx) error {
	id := c.Params("id")
	req := new(domain.ShareTraceRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedShareTrace); !ok {
		return err
	}

	if err := h.factoryService.ShareTrace(c.UserContext(), currentSession(c), id, *req); err != nil {
		return failure(c, domain.MessageFailedShareTrace, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessShareTrace)
}

func (h *factoryHandler) GetDashboard(c *fiber.Ctx) error {
	res, err := h.factoryService.GetDashboard(c.UserContext(), currentSession(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetFactoryStats, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFactoryStats)
}
