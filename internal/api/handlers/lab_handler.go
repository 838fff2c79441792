package handlers

import (
	"turmeric-trace/domain"
	"turmeric-trace/internal/api/presenters"
	"turmeric-trace/pkg/lab"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	LabHandler interface {
		GetSubmissions(c *fiber.Ctx) error
		GetSubmission(c *fiber.Ctx) error
		RecordResult(c *fiber.Ctx) error
		GetHistory(c *fiber.Ctx) error
		GetDashboard(c *fiber.Ctx) error
	}

	labHandler struct {
		labService lab.LabService
		validator  *validator.Validate
	}
)

func NewLabHandler(labService lab.LabService, validator *validator.Validate) LabHandler {
	return &labHandler{
		labService: labService,
		validator:  validator,
	}
}

func (h *labHandler) GetSubmissions(c *fiber.Ctx) error {
	res, err := h.labService.GetSubmissions(c.UserContext(), currentSession(c), pageQuery(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetLabSubmissions, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLabSubmissions)
}

func (h *labHandler) GetSubmission(c *fiber.Ctx) error {
	res, err := h.labService.GetSubmission(c.UserContext(), currentSession(c), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedGetLabSubmissions, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLabSubmissions)
}

func (h *labHandler) RecordResult(c *fiber.Ctx) error {
	id := c.Params("id")
	req := new(domain.LabResultRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedRecordLabResult); !ok {
		return err
	}

	res, err := h.labService.RecordResult(c.UserContext(), currentSession(c), id, *req)
	if err != nil {
		return failure(c, domain.MessageFailedRecordLabResult, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRecordLabResult)
}

func (h *labHandler) GetHistory(c *fiber.Ctx) error {
	res, err := h.labService.GetHistory(c.UserContext(), currentSession(c), pageQuery(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetLabSubmissions, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLabSubmissions)
}

func (h *labHandler) GetDashboard(c *fiber.Ctx) error {
	res, err := h.labService.GetDashboard(c.UserContext(), currentSession(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetInspectorStats, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInspectorStats)
}
