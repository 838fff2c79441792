package lab

import (
	"context"

	"turmeric-trace/entities"
	"turmeric-trace/pkg/strapi"
)

const (
	collectionLabs           = "labs"
	collectionLabSubmissions = "lab-submission-records"
)

type (
	LabRepository interface {
		ListLabsForUser(ctx context.Context, token, userID string) ([]entities.Lab, error)
		ListSubmissions(ctx context.Context, token, labID string) ([]entities.LabSubmission, error)
		FindSubmission(ctx context.Context, token, id string) (entities.LabSubmission, error)
		UpdateSubmission(ctx context.Context, token, id string, data map[string]any) (entities.LabSubmission, error)
	}

	labRepository struct {
		backend strapi.Backend
	}
)

func NewLabRepository(backend strapi.Backend) LabRepository {
	return &labRepository{backend: backend}
}

func (r *labRepository) ListLabsForUser(ctx context.Context, token, userID string) ([]entities.Lab, error) {
	q := strapi.Query{}.Where(strapi.Eq(userID, "user", "id"))
	return strapi.ListAll[entities.Lab](ctx, r.backend, token, collectionLabs, q)
}

func (r *labRepository) ListSubmissions(ctx context.Context, token, labID string) ([]entities.LabSubmission, error) {
	q := strapi.Query{Populate: []string{"batch", "harvest_record", "lab", "certificate"}}.
		Where(strapi.Eq(labID, "lab", "documentId")).
		SortBy("submission_date:desc")
	return strapi.ListAll[entities.LabSubmission](ctx, r.backend, token, collectionLabSubmissions, q)
}

func (r *labRepository) FindSubmission(ctx context.Context, token, id string) (entities.LabSubmission, error) {
	q := strapi.Query{Populate: []string{"batch", "harvest_record", "lab", "certificate"}}
	return strapi.Find[entities.LabSubmission](ctx, r.backend, token, collectionLabSubmissions, id, q)
}

func (r *labRepository) UpdateSubmission(ctx context.Context, token, id string, data map[string]any) (entities.LabSubmission, error) {
	return strapi.Update[entities.LabSubmission](ctx, r.backend, token, collectionLabSubmissions, id, data)
}
