package farm

import (
	"context"

	"turmeric-trace/entities"
	"turmeric-trace/pkg/strapi"
)

const (
	collectionFarms              = "farms"
	collectionBatches            = "batches"
	collectionHarvestRecords     = "harvest-records"
	collectionLabSubmissions     = "lab-submission-records"
	collectionFactorySubmissions = "factory-submissions"
	collectionCropTypes          = "crop-types"
)

type (
	FarmRepository interface {
		ListFarms(ctx context.Context, token, userID string) ([]entities.Farm, error)
		FindFarm(ctx context.Context, token, id string) (entities.Farm, error)
		CreateFarm(ctx context.Context, token string, data map[string]any) (entities.Farm, error)
		UpdateFarm(ctx context.Context, token, id string, data map[string]any) (entities.Farm, error)
		DeleteFarm(ctx context.Context, token, id string) error

		ListBatches(ctx context.Context, token, userID string) ([]entities.Batch, error)
		FindBatch(ctx context.Context, token, id string) (entities.Batch, error)
		CreateBatch(ctx context.Context, token string, data map[string]any) (entities.Batch, error)
		UpdateBatch(ctx context.Context, token, id string, data map[string]any) (entities.Batch, error)
		DeleteBatch(ctx context.Context, token, id string) error

		ListHarvests(ctx context.Context, token, userID string) ([]entities.HarvestRecord, error)
		CreateHarvest(ctx context.Context, token string, data map[string]any) (entities.HarvestRecord, error)

		ListLabSubmissions(ctx context.Context, token, batchID string) ([]entities.LabSubmission, error)
		CreateLabSubmission(ctx context.Context, token string, data map[string]any) (entities.LabSubmission, error)

		ListFactorySubmissions(ctx context.Context, token, batchID string) ([]entities.FactorySubmission, error)
		CreateFactorySubmission(ctx context.Context, token string, data map[string]any) (entities.FactorySubmission, error)

		ListCropTypes(ctx context.Context, token string) ([]entities.CropType, error)
	}

	farmRepository struct {
		backend strapi.Backend
	}
)

func NewFarmRepository(backend strapi.Backend) FarmRepository {
	return &farmRepository{backend: backend}
}

func (r *farmRepository) ListFarms(ctx context.Context, token, userID string) ([]entities.Farm, error) {
	q := strapi.PopulateAll().
		Where(strapi.Eq(userID, "user", "id")).
		SortBy("createdAt:desc")
	return strapi.ListAll[entities.Farm](ctx, r.backend, token, collectionFarms, q)
}

func (r *farmRepository) FindFarm(ctx context.Context, token, id string) (entities.Farm, error) {
	return strapi.Find[entities.Farm](ctx, r.backend, token, collectionFarms, id, strapi.PopulateAll())
}

func (r *farmRepository) CreateFarm(ctx context.Context, token string, data map[string]any) (entities.Farm, error) {
	return strapi.Create[entities.Farm](ctx, r.backend, token, collectionFarms, data)
}

func (r *farmRepository) UpdateFarm(ctx context.Context, token, id string, data map[string]any) (entities.Farm, error) {
	return strapi.Update[entities.Farm](ctx, r.backend, token, collectionFarms, id, data)
}

func (r *farmRepository) DeleteFarm(ctx context.Context, token, id string) error {
	return strapi.Delete(ctx, r.backend, token, collectionFarms, id)
}

func (r *farmRepository) ListBatches(ctx context.Context, token, userID string) ([]entities.Batch, error) {
	q := strapi.Query{Populate: []string{"farm", "harvest_records"}}.
		Where(strapi.Eq(userID, "farm", "user", "id")).
		SortBy("createdAt:desc")
	return strapi.ListAll[entities.Batch](ctx, r.backend, token, collectionBatches, q)
}

func (r *farmRepository) FindBatch(ctx context.Context, token, id string) (entities.Batch, error) {
	q := strapi.Query{Populate: []string{"farm.user", "harvest_records"}}
	return strapi.Find[entities.Batch](ctx, r.backend, token, collectionBatches, id, q)
}

func (r *farmRepository) CreateBatch(ctx context.Context, token string, data map[string]any) (entities.Batch, error) {
	return strapi.Create[entities.Batch](ctx, r.backend, token, collectionBatches, data)
}

func (r *farmRepository) UpdateBatch(ctx context.Context, token, id string, data map[string]any) (entities.Batch, error) {
	return strapi.Update[entities.Batch](ctx, r.backend, token, collectionBatches, id, data)
}

func (r *farmRepository) DeleteBatch(ctx context.Context, token, id string) error {
	return strapi.Delete(ctx, r.backend, token, collectionBatches, id)
}

func (r *farmRepository) ListHarvests(ctx context.Context, token, userID string) ([]entities.HarvestRecord, error) {
	q := strapi.Query{Populate: []string{"batch.farm"}}.
		Where(strapi.Eq(userID, "batch", "farm", "user", "id")).
		SortBy("harvest_date:desc")
	return strapi.ListAll[entities.HarvestRecord](ctx, r.backend, token, collectionHarvestRecords, q)
}

func (r *farmRepository) CreateHarvest(ctx context.Context, token string, data map[string]any) (entities.HarvestRecord, error) {
	return strapi.Create[entities.HarvestRecord](ctx, r.backend, token, collectionHarvestRecords, data)
}

func (r *farmRepository) ListLabSubmissions(ctx context.Context, token, batchID string) ([]entities.LabSubmission, error) {
	q := strapi.PopulateAll().Where(strapi.Eq(batchID, "batch", "documentId"))
	return strapi.ListAll[entities.LabSubmission](ctx, r.backend, token, collectionLabSubmissions, q)
}

func (r *farmRepository) CreateLabSubmission(ctx context.Context, token string, data map[string]any) (entities.LabSubmission, error) {
	return strapi.Create[entities.LabSubmission](ctx, r.backend, token, collectionLabSubmissions, data)
}

func (r *farmRepository) ListFactorySubmissions(ctx context.Context, token, batchID string) ([]entities.FactorySubmission, error) {
	q := strapi.PopulateAll().Where(strapi.Eq(batchID, "batch", "documentId"))
	return strapi.ListAll[entities.FactorySubmission](ctx, r.backend, token, collectionFactorySubmissions, q)
}

func (r *farmRepository) CreateFactorySubmission(ctx context.Context, token string, data map[string]any) (entities.FactorySubmission, error) {
	return strapi.Create[entities.FactorySubmission](ctx, r.backend, token, collectionFactorySubmissions, data)
}

func (r *farmRepository) ListCropTypes(ctx context.Context, token string) ([]entities.CropType, error) {
	q := strapi.Query{}.SortBy("name:asc")
	return strapi.ListAll[entities.CropType](ctx, r.backend, token, collectionCropTypes, q)
}
