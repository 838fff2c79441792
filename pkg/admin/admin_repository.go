package admin

import (
	"context"
	"strconv"

	"turmeric-trace/domain"
	"turmeric-trace/entities"
	"turmeric-trace/pkg/strapi"
)

const (
	CollectionCropTypes = "crop-types"
	CollectionFactories = "factories"
	CollectionLabs      = "labs"

	collectionFarms         = "farms"
	collectionBatches       = "batches"
	collectionNotifications = "notifications"
)

type (
	AdminRepository interface {
		ListUsers(ctx context.Context, token string) ([]entities.User, error)
		ListReferences(ctx context.Context, token, collection string) ([]domain.ReferenceResponse, error)
		FindReference(ctx context.Context, token, collection, id string) (domain.ReferenceResponse, error)
		CreateReference(ctx context.Context, token, collection string, data map[string]any) error
		UpdateReference(ctx context.Context, token, collection, id string, data map[string]any) error
		DeleteReference(ctx context.Context, token, collection, id string) error
		Count(ctx context.Context, token, collection string) (int, error)
		ListBatches(ctx context.Context, token string) ([]entities.Batch, error)
		CreateNotification(ctx context.Context, token string, data map[string]any) (entities.Notification, error)
	}

	adminRepository struct {
		backend strapi.Backend
	}
)

func NewAdminRepository(backend strapi.Backend) AdminRepository {
	return &adminRepository{backend: backend}
}

func (r *adminRepository) ListUsers(ctx context.Context, token string) ([]entities.User, error) {
	return strapi.AllUsers(ctx, r.backend, token, strapi.PopulateAll())
}

func ownerName(u *entities.User) string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return strconv.Itoa(u.ID)
}

func cropTypeReference(c entities.CropType) domain.ReferenceResponse {
	return domain.ReferenceResponse{ID: c.Key(), Name: c.Name, Description: c.Description}
}

func factoryReference(f entities.Factory) domain.ReferenceResponse {
	return domain.ReferenceResponse{ID: f.Key(), Name: f.FactoryName, Address: f.Address, ContactNumber: f.ContactNumber, Owner: ownerName(f.User)}
}

func labReference(l entities.Lab) domain.ReferenceResponse {
	return domain.ReferenceResponse{ID: l.Key(), Name: l.LabName, Address: l.Address, ContactNumber: l.ContactNumber, Owner: ownerName(l.User)}
}

func mapAll[T any](items []T, f func(T) domain.ReferenceResponse) []domain.ReferenceResponse {
	out := make([]domain.ReferenceResponse, 0, len(items))
	for _, item := range items {
		out = append(out, f(item))
	}
	return out
}

func (r *adminRepository) ListReferences(ctx context.Context, token, collection string) ([]domain.ReferenceResponse, error) {
	q := strapi.PopulateAll().SortBy("createdAt:desc")

	switch collection {
	case CollectionCropTypes:
		items, err := strapi.ListAll[entities.CropType](ctx, r.backend, token, collection, q)
		return mapAll(items, cropTypeReference), err
	case CollectionFactories:
		items, err := strapi.ListAll[entities.Factory](ctx, r.backend, token, collection, q)
		return mapAll(items, factoryReference), err
	case CollectionLabs:
		items, err := strapi.ListAll[entities.Lab](ctx, r.backend, token, collection, q)
		return mapAll(items, labReference), err
	}
	return nil, domain.ErrUnknownReferenceCollection
}

func (r *adminRepository) FindReference(ctx context.Context, token, collection, id string) (domain.ReferenceResponse, error) {
	q := strapi.PopulateAll()

	switch collection {
	case CollectionCropTypes:
		item, err := strapi.Find[entities.CropType](ctx, r.backend, token, collection, id, q)
		return cropTypeReference(item), err
	case CollectionFactories:
		item, err := strapi.Find[entities.Factory](ctx, r.backend, token, collection, id, q)
		return factoryReference(item), err
	case CollectionLabs:
		item, err := strapi.Find[entities.Lab](ctx, r.backend, token, collection, id, q)
		return labReference(item), err
	}
	return domain.ReferenceResponse{}, domain.ErrUnknownReferenceCollection
}

func (r *adminRepository) CreateReference(ctx context.Context, token, collection string, data map[string]any) error {
	_, err := strapi.Create[entities.Record](ctx, r.backend, token, collection, data)
	return err
}

func (r *adminRepository) UpdateReference(ctx context.Context, token, collection, id string, data map[string]any) error {
	_, err := strapi.Update[entities.Record](ctx, r.backend, token, collection, id, data)
	return err
}

func (r *adminRepository) DeleteReference(ctx context.Context, token, collection, id string) error {
	return strapi.Delete(ctx, r.backend, token, collection, id)
}

// Count reads the collection total from pagination metadata.
func (r *adminRepository) Count(ctx context.Context, token, collection string) (int, error) {
	_, meta, err := strapi.List[entities.Record](ctx, r.backend, token, collection, strapi.Query{Page: 1, PageSize: 1})
	if err != nil {
		return 0, err
	}
	return meta.Pagination.Total, nil
}

func (r *adminRepository) ListBatches(ctx context.Context, token string) ([]entities.Batch, error) {
	return strapi.ListAll[entities.Batch](ctx, r.backend, token, collectionBatches, strapi.Query{})
}

func (r *adminRepository) CreateNotification(ctx context.Context, token string, data map[string]any) (entities.Notification, error) {
	return strapi.Create[entities.Notification](ctx, r.backend, token, collectionNotifications, data)
}
