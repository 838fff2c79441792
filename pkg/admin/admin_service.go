package admin

import (
	"context"
	"errors"

	"turmeric-trace/domain"
	"turmeric-trace/entities"
	"turmeric-trace/pkg/chart"
	"turmeric-trace/pkg/listing"
	"turmeric-trace/pkg/strapi"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/errgroup"
)

type (
	AdminService interface {
		GetUsers(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.UserResponse], error)

		GetReferences(ctx context.Context, session domain.Session, collection string, q domain.PageQuery) (listing.Page[domain.ReferenceResponse], error)
		CreateReference(ctx context.Context, session domain.Session, collection string, req any) (listing.Page[domain.ReferenceResponse], error)
		UpdateReference(ctx context.Context, session domain.Session, collection, id string, req any) (listing.Page[domain.ReferenceResponse], error)
		DeleteReference(ctx context.Context, session domain.Session, collection, id string) (listing.Page[domain.ReferenceResponse], error)

		CreateNotification(ctx context.Context, session domain.Session, req domain.NotificationRequest) (domain.NotificationResponse, error)
		GetDashboard(ctx context.Context, session domain.Session) (domain.AdminDashboard, error)
	}

	adminService struct {
		adminRepository AdminRepository
	}
)

func NewAdminService(adminRepository AdminRepository) AdminService {
	return &adminService{adminRepository: adminRepository}
}

// NewReferenceRequest returns an empty request body for the reference collection.
func NewReferenceRequest(collection string) (any, error) {
	switch collection {
	case CollectionCropTypes:
		return &domain.CropTypeRequest{}, nil
	case CollectionFactories:
		return &domain.FactoryRequest{}, nil
	case CollectionLabs:
		return &domain.LabRequest{}, nil
	}
	return nil, domain.ErrUnknownReferenceCollection
}

func referenceData(collection string, req any) (map[string]any, error) {
	switch r := req.(type) {
	case *domain.CropTypeRequest:
		if collection == CollectionCropTypes {
			return map[string]any{"name": r.Name, "description": r.Description}, nil
		}
	case *domain.FactoryRequest:
		if collection == CollectionFactories {
			data := map[string]any{"factory_name": r.FactoryName, "address": r.Address, "contact_number": r.ContactNumber}
			if r.User != "" {
				data["user"] = domain.UserRef(r.User)
			}
			return data, nil
		}
	case *domain.LabRequest:
		if collection == CollectionLabs {
			data := map[string]any{"lab_name": r.LabName, "address": r.Address, "contact_number": r.ContactNumber}
			if r.User != "" {
				data["user"] = domain.UserRef(r.User)
			}
			return data, nil
		}
	}
	return nil, domain.ErrUnknownReferenceCollection
}

func (s *adminService) GetUsers(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.UserResponse], error) {
	users, err := s.adminRepository.ListUsers(ctx, session.BackendToken)
	if err != nil {
		return listing.Page[domain.UserResponse]{}, err
	}

	items := make([]domain.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, domain.NewUserResponse(u))
	}

	return listing.Apply(items, listing.Params{Page: q.Page, PageSize: q.Limit},
		listing.Contains(q.Search,
			func(u domain.UserResponse) string { return u.Username },
			func(u domain.UserResponse) string { return u.Email },
		),
		listing.Equals(q.Status, func(u domain.UserResponse) string { return u.Role }),
	), nil
}

func (s *adminService) GetReferences(ctx context.Context, session domain.Session, collection string, q domain.PageQuery) (listing.Page[domain.ReferenceResponse], error) {
	items, err := s.adminRepository.ListReferences(ctx, session.BackendToken, collection)
	if err != nil {
		return listing.Page[domain.ReferenceResponse]{}, err
	}

	return listing.Apply(items, listing.Params{Page: q.Page, PageSize: q.Limit},
		listing.Contains(q.Search,
			func(r domain.ReferenceResponse) string { return r.Name },
			func(r domain.ReferenceResponse) string { return r.Address },
			func(r domain.ReferenceResponse) string { return r.Description },
		),
	), nil
}

func (s *adminService) CreateReference(ctx context.Context, session domain.Session, collection string, req any) (listing.Page[domain.ReferenceResponse], error) {
	data, err := referenceData(collection, req)
	if err != nil {
		return listing.Page[domain.ReferenceResponse]{}, err
	}

	if err := s.adminRepository.CreateReference(ctx, session.BackendToken, collection, data); err != nil {
		return listing.Page[domain.ReferenceResponse]{}, err
	}
	log.Infof("admin %s created a %s record", session.UserID, collection)

	return s.GetReferences(ctx, session, collection, domain.PageQuery{Page: 1})
}

func (s *adminService) existingReference(ctx context.Context, session domain.Session, collection, id string) error {
	_, err := s.adminRepository.FindReference(ctx, session.BackendToken, collection, id)
	if errors.Is(err, strapi.ErrNotFound) {
		return domain.ErrRecordNotFound
	}
	return err
}

func (s *adminService) UpdateReference(ctx context.Context, session domain.Session, collection, id string, req any) (listing.Page[domain.ReferenceResponse], error) {
	data, err := referenceData(collection, req)
	if err != nil {
		return listing.Page[domain.ReferenceResponse]{}, err
	}
	if err := s.existingReference(ctx, session, collection, id); err != nil {
		return listing.Page[domain.ReferenceResponse]{}, err
	}

	if err := s.adminRepository.UpdateReference(ctx, session.BackendToken, collection, id, data); err != nil {
		return listing.Page[domain.ReferenceResponse]{}, err
	}

	return s.GetReferences(ctx, session, collection, domain.PageQuery{Page: 1})
}

func (s *adminService) DeleteReference(ctx context.Context, session domain.Session, collection, id string) (listing.Page[domain.ReferenceResponse], error) {
	if _, err := NewReferenceRequest(collection); err != nil {
		return listing.Page[domain.ReferenceResponse]{}, err
	}
	if err := s.existingReference(ctx, session, collection, id); err != nil {
		return listing.Page[domain.ReferenceResponse]{}, err
	}

	if err := s.adminRepository.DeleteReference(ctx, session.BackendToken, collection, id); err != nil {
		return listing.Page[domain.ReferenceResponse]{}, err
	}
	log.Infof("admin %s deleted %s/%s", session.UserID, collection, id)

	return s.GetReferences(ctx, session, collection, domain.PageQuery{Page: 1})
}

func (s *adminService) CreateNotification(ctx context.Context, session domain.Session, req domain.NotificationRequest) (domain.NotificationResponse, error) {
	if req.TargetRole == "" && req.User == "" {
		return domain.NotificationResponse{}, domain.ErrNotificationTargetMissing
	}

	kind := req.Type
	if kind == "" {
		kind = "info"
	}
	data := map[string]any{
		"title":   req.Title,
		"message": req.Message,
		"type":    kind,
		"link":    req.Link,
	}
	if req.TargetRole != "" {
		data["target_role"] = req.TargetRole
	}
	if req.User != "" {
		data["user"] = domain.UserRef(req.User)
	}

	n, err := s.adminRepository.CreateNotification(ctx, session.BackendToken, data)
	if err != nil {
		return domain.NotificationResponse{}, err
	}
	log.Infof("notification %s created by admin %s", n.Key(), session.UserID)

	return domain.NewNotificationResponse(n), nil
}

func (s *adminService) GetDashboard(ctx context.Context, session domain.Session) (domain.AdminDashboard, error) {
	var (
		users                     []entities.User
		batches                   []entities.Batch
		farms, factories, labsCnt int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.adminRepository.ListUsers(gctx, session.BackendToken)
		return err
	})
	g.Go(func() (err error) {
		batches, err = s.adminRepository.ListBatches(gctx, session.BackendToken)
		return err
	})
	g.Go(func() (err error) {
		farms, err = s.adminRepository.Count(gctx, session.BackendToken, collectionFarms)
		return err
	})
	g.Go(func() (err error) {
		factories, err = s.adminRepository.Count(gctx, session.BackendToken, CollectionFactories)
		return err
	})
	g.Go(func() (err error) {
		labsCnt, err = s.adminRepository.Count(gctx, session.BackendToken, CollectionLabs)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.AdminDashboard{}, err
	}

	return domain.AdminDashboard{
		UserCount: len(users),
		UsersByRole: chart.GroupCount(users, func(u entities.User) string {
			return domain.NormalizeRole(u.RoleName())
		}),
		FarmCount:    farms,
		FactoryCount: factories,
		LabCount:     labsCnt,
		BatchesStatus: chart.GroupCount(batches, func(b entities.Batch) string {
			return b.BatchStatus
		}),
		MonthlyBatches: chart.Monthly(batches, func(b entities.Batch) string {
			return b.PlantingDate
		}, func(entities.Batch) float64 { return 1 }),
	}, nil
}
