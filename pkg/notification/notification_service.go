package notification

import (
	"context"

	"turmeric-trace/domain"
	"turmeric-trace/pkg/listing"

	"github.com/gofiber/fiber/v2/log"
)

type (
	NotificationService interface {
		GetNotifications(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.NotificationResponse], error)
		Dismiss(ctx context.Context, session domain.Session, id string) (listing.Page[domain.NotificationResponse], error)
		DismissAll(ctx context.Context, session domain.Session) (listing.Page[domain.NotificationResponse], error)
	}

	notificationService struct {
		notificationRepository NotificationRepository
		feed                   NotificationFeed
	}
)

func NewNotificationService(notificationRepository NotificationRepository, feed NotificationFeed) NotificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
		feed:                   feed,
	}
}

// visible returns the caller's notifications minus the ones they dismissed.
func (s *notificationService) visible(ctx context.Context, session domain.Session) ([]domain.NotificationResponse, error) {
	all, err := s.feed.ForUser(ctx, session.BackendToken, session.UserID, session.Role)
	if err != nil {
		return nil, err
	}

	dismissed, err := s.notificationRepository.DismissedIDs(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	hidden := make(map[string]bool, len(dismissed))
	for _, id := range dismissed {
		hidden[id] = true
	}

	items := make([]domain.NotificationResponse, 0, len(all))
	for _, n := range all {
		if !hidden[n.Key()] {
			items = append(items, domain.NewNotificationResponse(n))
		}
	}
	return items, nil
}

func (s *notificationService) GetNotifications(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.NotificationResponse], error) {
	items, err := s.visible(ctx, session)
	if err != nil {
		return listing.Page[domain.NotificationResponse]{}, err
	}

	return listing.Apply(items, listing.Params{Page: q.Page, PageSize: q.Limit},
		listing.Contains(q.Search,
			func(n domain.NotificationResponse) string { return n.Title },
			func(n domain.NotificationResponse) string { return n.Message },
		),
		listing.Equals(q.Status, func(n domain.NotificationResponse) string { return n.Type }),
	), nil
}

func (s *notificationService) Dismiss(ctx context.Context, session domain.Session, id string) (listing.Page[domain.NotificationResponse], error) {
	if err := s.notificationRepository.Dismiss(ctx, session.UserID, id); err != nil {
		return listing.Page[domain.NotificationResponse]{}, err
	}
	return s.GetNotifications(ctx, session, domain.PageQuery{Page: 1})
}

func (s *notificationService) DismissAll(ctx context.Context, session domain.Session) (listing.Page[domain.NotificationResponse], error) {
	items, err := s.visible(ctx, session)
	if err != nil {
		return listing.Page[domain.NotificationResponse]{}, err
	}

	ids := make([]string, 0, len(items))
	for _, n := range items {
		ids = append(ids, n.ID)
	}
	if err := s.notificationRepository.Dismiss(ctx, session.UserID, ids...); err != nil {
		return listing.Page[domain.NotificationResponse]{}, err
	}
	log.Infof("user %s dismissed %d notifications", session.UserID, len(ids))

	return s.GetNotifications(ctx, session, domain.PageQuery{Page: 1})
}
