package factory

import (
	"context"

	"turmeric-trace/entities"
	"turmeric-trace/pkg/strapi"
)

const (
	collectionFactories          = "factories"
	collectionFactorySubmissions = "factory-submissions"
	collectionProcessings        = "factory-processings"
	collectionExports            = "export-factory-histories"
)

type (
	FactoryRepository interface {
		ListFactoriesForUser(ctx context.Context, token, userID string) ([]entities.Factory, error)

		ListSubmissions(ctx context.Context, token, factoryID string) ([]entities.FactorySubmission, error)
		FindSubmission(ctx context.Context, token, id string) (entities.FactorySubmission, error)
		UpdateSubmission(ctx context.Context, token, id string, data map[string]any) (entities.FactorySubmission, error)

		ListProcessings(ctx context.Context, token, factoryID string) ([]entities.FactoryProcessing, error)
		FindProcessing(ctx context.Context, token, id string) (entities.FactoryProcessing, error)
		CreateProcessing(ctx context.Context, token string, data map[string]any) (entities.FactoryProcessing, error)
		UpdateProcessing(ctx context.Context, token, id string, data map[string]any) (entities.FactoryProcessing, error)
		DeleteProcessing(ctx context.Context, token, id string) error

		ListExports(ctx context.Context, token, factoryID string) ([]entities.ExportHistory, error)
		CreateExport(ctx context.Context, token string, data map[string]any) (entities.ExportHistory, error)
	}

	factoryRepository struct {
		backend strapi.Backend
	}
)

func NewFactoryRepository(backend strapi.Backend) FactoryRepository {
	return &factoryRepository{backend: backend}
}

func (r *factoryRepository) ListFactoriesForUser(ctx context.Context, token, userID string) ([]entities.Factory, error) {
	q := strapi.Query{}.Where(strapi.Eq(userID, "user", "id"))
	return strapi.ListAll[entities.Factory](ctx, r.backend, token, collectionFactories, q)
}

func (r *factoryRepository) ListSubmissions(ctx context.Context, token, factoryID string) ([]entities.FactorySubmission, error) {
	q := strapi.Query{Populate: []string{"batch.farm", "factory", "lab_submission_record"}}.
		Where(strapi.Eq(factoryID, "factory", "documentId")).
		SortBy("submission_date:desc")
	return strapi.ListAll[entities.FactorySubmission](ctx, r.backend, token, collectionFactorySubmissions, q)
}

func (r *factoryRepository) FindSubmission(ctx context.Context, token, id string) (entities.FactorySubmission, error) {
	q := strapi.Query{Populate: []string{"batch", "factory"}}
	return strapi.Find[entities.FactorySubmission](ctx, r.backend, token, collectionFactorySubmissions, id, q)
}

func (r *factoryRepository) UpdateSubmission(ctx context.Context, token, id string, data map[string]any) (entities.FactorySubmission, error) {
	return strapi.Update[entities.FactorySubmission](ctx, r.backend, token, collectionFactorySubmissions, id, data)
}

func (r *factoryRepository) ListProcessings(ctx context.Context, token, factoryID string) ([]entities.FactoryProcessing, error) {
	q := strapi.Query{Populate: []string{"factory_submission.batch", "factory"}}.
		Where(strapi.Eq(factoryID, "factory", "documentId")).
		SortBy("processing_date:desc")
	return strapi.ListAll[entities.FactoryProcessing](ctx, r.backend, token, collectionProcessings, q)
}

func (r *factoryRepository) FindProcessing(ctx context.Context, token, id string) (entities.FactoryProcessing, error) {
	q := strapi.Query{Populate: []string{"factory_submission.batch", "factory"}}
	return strapi.Find[entities.FactoryProcessing](ctx, r.backend, token, collectionProcessings, id, q)
}

func (r *factoryRepository) CreateProcessing(ctx context.Context, token string, data map[string]any) (entities.FactoryProcessing, error) {
	return strapi.Create[entities.FactoryProcessing](ctx, r.backend, token, collectionProcessings, data)
}

func (r *factoryRepository) UpdateProcessing(ctx context.Context, token, id string, data map[string]any) (entities.FactoryProcessing, error) {
	return strapi.Update[entities.FactoryProcessing](ctx, r.backend, token, collectionProcessings, id, data)
}

func (r *factoryRepository) DeleteProcessing(ctx context.Context, token, id string) error {
	return strapi.Delete(ctx, r.backend, token, collectionProcessings, id)
}

func (r *factoryRepository) ListExports(ctx context.Context, token, factoryID string) ([]entities.ExportHistory, error) {
	q := strapi.Query{Populate: []string{"factory_processing.factory_submission.batch", "factory"}}.
		Where(strapi.Eq(factoryID, "factory", "documentId")).
		SortBy("export_date:desc")
	return strapi.ListAll[entities.ExportHistory](ctx, r.backend, token, collectionExports, q)
}

func (r *factoryRepository) CreateExport(ctx context.Context, token string, data map[string]any) (entities.ExportHistory, error) {
	return strapi.Create[entities.ExportHistory](ctx, r.backend, token, collectionExports, data)
}
