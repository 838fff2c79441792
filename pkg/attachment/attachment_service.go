package attachment

import (
	"context"
	"errors"

	"turmeric-trace/domain"
	"turmeric-trace/entities"
	"turmeric-trace/pkg/strapi"
)

type (
	Attachment struct {
		File entities.UploadFile
		Blob *strapi.Blob
	}

	AttachmentService interface {
		Open(ctx context.Context, session domain.Session, id string) (Attachment, error)
	}

	attachmentService struct {
		backend strapi.Backend
	}
)

func NewAttachmentService(backend strapi.Backend) AttachmentService {
	return &attachmentService{backend: backend}
}

// Open resolves file metadata and opens the blob. The caller closes Blob.Body.
func (s *attachmentService) Open(ctx context.Context, session domain.Session, id string) (Attachment, error) {
	meta, err := strapi.FileMeta(ctx, s.backend, session.BackendToken, id)
	if err != nil {
		if errors.Is(err, strapi.ErrNotFound) {
			return Attachment{}, domain.ErrRecordNotFound
		}
		return Attachment{}, err
	}
	if meta.URL == "" {
		return Attachment{}, domain.ErrRecordNotFound
	}

	blob, err := s.backend.Download(ctx, session.BackendToken, meta.URL)
	if err != nil {
		return Attachment{}, err
	}
	if blob.ContentType == "" {
		blob.ContentType = meta.Mime
	}
	return Attachment{File: meta, Blob: blob}, nil
}
