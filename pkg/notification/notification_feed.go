package notification

import (
	"context"
	"sort"

	"turmeric-trace/entities"
	"turmeric-trace/pkg/strapi"

	"golang.org/x/sync/errgroup"
)

const collectionNotifications = "notifications"

type (
	// NotificationFeed reads notifications from the content backend.
	NotificationFeed interface {
		ForUser(ctx context.Context, token, userID, role string) ([]entities.Notification, error)
	}

	notificationFeed struct {
		backend strapi.Backend
	}
)

func NewNotificationFeed(backend strapi.Backend) NotificationFeed {
	return &notificationFeed{backend: backend}
}

// ForUser merges notifications addressed to the user with those broadcast to
// the user's role, newest first.
func (f *notificationFeed) ForUser(ctx context.Context, token, userID, role string) ([]entities.Notification, error) {
	var direct, broadcast []entities.Notification

	base := strapi.Query{}.SortBy("createdAt:desc")
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		direct, err = strapi.ListAll[entities.Notification](gctx, f.backend, token, collectionNotifications,
			base.Where(strapi.Eq(userID, "user", "id")))
		return err
	})
	g.Go(func() (err error) {
		broadcast, err = strapi.ListAll[entities.Notification](gctx, f.backend, token, collectionNotifications,
			base.Where(strapi.Eq(role, "target_role")))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(direct)+len(broadcast))
	merged := make([]entities.Notification, 0, len(direct)+len(broadcast))
	for _, n := range append(direct, broadcast...) {
		if seen[n.Key()] {
			continue
		}
		seen[n.Key()] = true
		merged = append(merged, n)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged, nil
}
