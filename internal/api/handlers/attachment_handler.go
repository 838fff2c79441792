package handlers

import (
	"io"

	"turmeric-trace/domain"
	"turmeric-trace/internal/utils"
	"turmeric-trace/pkg/attachment"

	"github.com/gofiber/fiber/v2"
)

type (
	AttachmentHandler interface {
		Download(c *fiber.Ctx) error
	}

	attachmentHandler struct {
		attachmentService attachment.AttachmentService
		maxBytes          int64
	}
)

const defaultMaxAttachmentBytes = 25 << 20

func NewAttachmentHandler(attachmentService attachment.AttachmentService) AttachmentHandler {
	return &attachmentHandler{
		attachmentService: attachmentService,
		maxBytes:          int64(utils.GetConfigInt("ATTACHMENT_MAX_BYTES", defaultMaxAttachmentBytes)),
	}
}

// Download reads the blob fully before answering; the request context, and
// with it the backend stream, ends as soon as the handler returns.
func (h *attachmentHandler) Download(c *fiber.Ctx) error {
	file, err := h.attachmentService.Open(c.UserContext(), currentSession(c), c.Params("id"))
	if err != nil {
		return failure(c, domain.MessageFailedDownloadAttachment, err)
	}
	defer file.Blob.Body.Close()

	if file.Blob.ContentLength > h.maxBytes {
		return failure(c, domain.MessageFailedDownloadAttachment, domain.ErrAttachmentTooLarge)
	}
	body, err := io.ReadAll(io.LimitReader(file.Blob.Body, h.maxBytes+1))
	if err != nil {
		return failure(c, domain.MessageFailedDownloadAttachment, err)
	}
	if int64(len(body)) > h.maxBytes {
		return failure(c, domain.MessageFailedDownloadAttachment, domain.ErrAttachmentTooLarge)
	}

	c.Attachment(file.File.Name)
	if file.Blob.ContentType != "" {
		c.Set(fiber.HeaderContentType, file.Blob.ContentType)
	}
	return c.Status(fiber.StatusOK).Send(body)
}
