package catalog

import (
	"context"

	"turmeric-trace/domain"
	"turmeric-trace/entities"
	"turmeric-trace/pkg/strapi"
)

type (
	// CatalogRepository reads the public subset of the content backend. Calls
	// go out without a bearer token and rely on the backend's public role.
	CatalogRepository interface {
		ListCompletedProcessings(ctx context.Context) ([]entities.FactoryProcessing, error)
		FindBatchByCode(ctx context.Context, code string) (entities.Batch, error)
		ListHarvests(ctx context.Context, batchID string) ([]entities.HarvestRecord, error)
		ListLabSubmissions(ctx context.Context, batchID string) ([]entities.LabSubmission, error)
		ListFactorySubmissions(ctx context.Context, batchID string) ([]entities.FactorySubmission, error)
		ListProcessings(ctx context.Context, batchID string) ([]entities.FactoryProcessing, error)
	}

	catalogRepository struct {
		backend strapi.Backend
	}
)

func NewCatalogRepository(backend strapi.Backend) CatalogRepository {
	return &catalogRepository{backend: backend}
}

func (r *catalogRepository) ListCompletedProcessings(ctx context.Context) ([]entities.FactoryProcessing, error) {
	q := strapi.Query{Populate: []string{"factory", "factory_submission.batch"}}.
		Where(strapi.Eq(domain.ProcessingStatusCompleted, "processing_status")).
		SortBy("processing_date:desc")
	return strapi.ListAll[entities.FactoryProcessing](ctx, r.backend, "", "factory-processings", q)
}

func (r *catalogRepository) FindBatchByCode(ctx context.Context, code string) (entities.Batch, error) {
	q := strapi.Query{Populate: []string{"farm"}, PageSize: 1}.
		Where(strapi.Eq(code, "batch_id"))
	batches, _, err := strapi.List[entities.Batch](ctx, r.backend, "", "batches", q)
	if err != nil {
		return entities.Batch{}, err
	}
	if len(batches) == 0 {
		return entities.Batch{}, domain.ErrTraceNotFound
	}
	return batches[0], nil
}

func byBatch(batchID string, populate ...string) strapi.Query {
	return strapi.Query{Populate: populate}.Where(strapi.Eq(batchID, "batch", "documentId"))
}

func (r *catalogRepository) ListHarvests(ctx context.Context, batchID string) ([]entities.HarvestRecord, error) {
	return strapi.ListAll[entities.HarvestRecord](ctx, r.backend, "", "harvest-records", byBatch(batchID).SortBy("harvest_date:asc"))
}

func (r *catalogRepository) ListLabSubmissions(ctx context.Context, batchID string) ([]entities.LabSubmission, error) {
	return strapi.ListAll[entities.LabSubmission](ctx, r.backend, "", "lab-submission-records", byBatch(batchID, "lab"))
}

func (r *catalogRepository) ListFactorySubmissions(ctx context.Context, batchID string) ([]entities.FactorySubmission, error) {
	return strapi.ListAll[entities.FactorySubmission](ctx, r.backend, "", "factory-submissions", byBatch(batchID, "factory"))
}

func (r *catalogRepository) ListProcessings(ctx context.Context, batchID string) ([]entities.FactoryProcessing, error) {
	q := strapi.Query{Populate: []string{"factory"}}.
		Where(strapi.Eq(batchID, "factory_submission", "batch", "documentId"))
	return strapi.ListAll[entities.FactoryProcessing](ctx, r.backend, "", "factory-processings", q)
}
