package handlers

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"turmeric-trace/domain"
	"turmeric-trace/internal/api/presenters"
	"turmeric-trace/internal/middleware"
	"turmeric-trace/internal/utils"
	"turmeric-trace/internal/utils/mailing"
	"turmeric-trace/internal/utils/storage"
	"turmeric-trace/pkg/listing"
	"turmeric-trace/pkg/strapi"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func pageQuery(c *fiber.Ctx) domain.PageQuery {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(listing.DefaultPageSize)))
	if err != nil || limit < 1 {
		limit = listing.DefaultPageSize
	}

	return domain.PageQuery{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
}

// currentSession is only called behind AuthMiddleware, so a missing session is a
// routing mistake rather than a client error.
func currentSession(c *fiber.Ctx) domain.Session {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		log.Errorf("no session on %s %s", c.Method(), c.Path())
	}
	return s
}

// parseBody decodes and validates req. It writes the error response itself
// and reports false when the handler should stop.
func parseBody(c *fiber.Ctx, v *validator.Validate, req any, failed string) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := v.Struct(req); err != nil {
		return false, presenters.ErrorResponseWithData(c, fiber.StatusBadRequest, failed, err,
			fiber.Map{"errors": utils.ValidationMessages(err)})
	}
	return true, nil
}

func errorStatus(err error) int {
	var netErr *url.Error
	var statusErr *strapi.StatusError

	switch {
	case errors.Is(err, strapi.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, strapi.ErrForbidden),
		errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrUserNotAllowed),
		errors.Is(err, domain.ErrLabSubmissionNotAssignedToUser),
		errors.Is(err, domain.ErrLabNotAssigned),
		errors.Is(err, domain.ErrFactoryNotAssigned):
		return fiber.StatusForbidden
	case errors.Is(err, strapi.ErrNotFound),
		errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrFarmNotFound),
		errors.Is(err, domain.ErrBatchNotFound),
		errors.Is(err, domain.ErrLabSubmissionNotFound),
		errors.Is(err, domain.ErrFactorySubmissionNotFound),
		errors.Is(err, domain.ErrProcessingNotFound),
		errors.Is(err, domain.ErrTraceNotFound),
		errors.Is(err, domain.ErrUnknownReferenceCollection):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAttachmentTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, storage.ErrNotConfigured),
		errors.Is(err, mailing.ErrNotConfigured),
		errors.Is(err, domain.ErrFeatureDisabled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, strapi.ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.As(err, &statusErr),
		errors.As(err, &netErr),
		errors.Is(err, strapi.ErrLegacyShape):
		return fiber.StatusBadGateway
	}
	return fiber.StatusBadRequest
}

// failure maps a service error onto the response envelope. An expired
// backend token always reads as an expired session.
func failure(c *fiber.Ctx, message string, err error) error {
	status := errorStatus(err)
	switch status {
	case fiber.StatusUnauthorized:
		message = domain.MessageSessionExpired
	case fiber.StatusBadGateway, fiber.StatusGatewayTimeout:
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		message = domain.MessageBackendUnavailable
	}
	return presenters.ErrorResponse(c, status, message, err)
}
