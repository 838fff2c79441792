package handlers

import (
	"turmeric-trace/domain"
	"turmeric-trace/internal/api/presenters"
	"turmeric-trace/pkg/farm"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FarmHandler interface {
		GetFarms(c *fiber.Ctx) error
		CreateFarm(c *fiber.Ctx) error
		UpdateFarm(c *fiber.Ctx) error
		DeleteFarm(c *fiber.Ctx) error

		GetBatches(c *fiber.Ctx) error
		CreateBatch(c *fiber.Ctx) error
		UpdateBatch(c *fiber.Ctx) error
		DeleteBatch(c *fiber.Ctx) error

		GetHarvests(c *fiber.Ctx) error
		CreateHarvest(c *fiber.Ctx) error

		SubmitToLab(c *fiber.Ctx) error
		SubmitToFactory(c *fiber.Ctx) error

		GetCropTypes(c *fiber.Ctx) error
		GetDashboard(c *fiber.Ctx) error
	}

	farmHandler struct {
		farmService farm.FarmService
		validator   *validator.Validate
	}
)

func NewFarmHandler(farmService farm.FarmService, validator *validator.Validate) FarmHandler {
	return &farmHandler{
		farmService: farmService,
		validator:   validator,
	}
}

func (h *farmHandler) GetFarms(c *fiber.Ctx) error {
	res, err := h.farmService.GetFarms(c.UserContext(), currentSession(c), pageQuery(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetFarms, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFarms)
}

func (h *farmHandler) CreateFarm(c *fiber.Ctx) error {
	req := new(domain.FarmRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedCreateFarm); !ok {
		return err
	}

	res, err := h.farmService.CreateFarm(c.UserContext(), currentSession(c), *req)
	if err != nil {
		return failure(c, domain.MessageFailedCreateFarm, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateFarm)
}

func (h *farmHandler) UpdateFarm(c *fiber.Ctx) error {
	id := c.Params("id")
	req := new(domain.FarmRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedUpdateFarm); !ok {
		return err
	}

	res, err := h.farmService.UpdateFarm(c.UserContext(), currentSession(c), id, *req)
	if err != nil {
		return failure(c, domain.MessageFailedUpdateFarm, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateFarm)
}

func (h *farmHandler) DeleteFarm(c *fiber.Ctx) error {
	res, err := h.farmService.DeleteFarm(c.UserContext(), currentSession(c), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedDeleteFarm, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteFarm)
}

func (h *farmHandler) GetBatches(c *fiber.Ctx) error {
	res, err := h.farmService.GetBatches(c.UserContext(), currentSession(c), pageQuery(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetBatches, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetBatches)
}

func (h *farmHandler) CreateBatch(c *fiber.Ctx) error {
	req := new(domain.BatchRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedCreateBatch); !ok {
		return err
	}

	res, err := h.farmService.CreateBatch(c.UserContext(), currentSession(c), *req)
	if err != nil {
		return failure(c, domain.MessageFailedCreateBatch, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateBatch)
}

func (h *farmHandler) UpdateBatch(c *fiber.Ctx) error {
	id := c.Params("id")
	req := new(domain.BatchRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedUpdateBatch); !ok {
		return err
	}

	res, err := h.farmService.UpdateBatch(c.UserContext(), currentSession(c), id, *req)
	if err != nil {
		return failure(c, domain.MessageFailedUpdateBatch, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateBatch)
}

func (h *farmHandler) DeleteBatch(c *fiber.Ctx) error {
	res, err := h.farmService.DeleteBatch(c.UserContext(), currentSession(c), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedDeleteBatch, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteBatch)
}

func (h *farmHandler) GetHarvests(c *fiber.Ctx) error {
	res, err := h.farmService.GetHarvests(c.UserContext(), currentSession(c), pageQuery(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetHarvests, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHarvests)
}

func (h *farmHandler) CreateHarvest(c *fiber.Ctx) error {
	req := new(domain.HarvestRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedCreateHarvest); !ok {
		return err
	}

	res, err := h.farmService.CreateHarvest(c.UserContext(), currentSession(c), *req)
	if err != nil {
		return failure(c, domain.MessageFailedCreateHarvest, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateHarvest)
}

func (h *farmHandler) SubmitToLab(c *fiber.Ctx) error {
	req := new(domain.LabSubmitRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedSubmitLab); !ok {
		return err
	}

	res, err := h.farmService.SubmitToLab(c.UserContext(), currentSession(c), *req)
	if err != nil {
		return failure(c, domain.MessageFailedSubmitLab, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSubmitLab)
}

func (h *farmHandler) SubmitToFactory(c *fiber.Ctx) error {
	req := new(domain.FactorySubmitRequest)
	if ok, err := parseBody(c, h.validator, req, domain.MessageFailedSubmitFactory); !ok {
		return err
	}

	res, err := h.farmService.SubmitToFactory(c.UserContext(), currentSession(c), *req)
	if err != nil {
		return failure(c, domain.MessageFailedSubmitFactory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSubmitFactory)
}

func (h *farmHandler) GetCropTypes(c *fiber.Ctx) error {
	res, err := h.farmService.GetCropTypes(c.UserContext(), currentSession(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetCropTypes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCropTypes)
}

func (h *farmHandler) GetDashboard(c *fiber.Ctx) error {
	res, err := h.farmService.GetDashboard(c.UserContext(), currentSession(c))
	if err != nil {
		return failure(c, domain.MessageFailedGetFarmerStats, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFarmerStats)
}
