package notification

import (
	"context"

	"turmeric-trace/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	NotificationRepository interface {
		DismissedIDs(ctx context.Context, userID string) ([]string, error)
		Dismiss(ctx context.Context, userID string, notificationIDs ...string) error
	}

	notificationRepository struct {
		db *gorm.DB
	}
)

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) DismissedIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&entities.DismissedNotification{}).
		Where("user_id = ?", userID).
		Pluck("notification_id", &ids).Error
	return ids, err
}

func (r *notificationRepository) Dismiss(ctx context.Context, userID string, notificationIDs ...string) error {
	if len(notificationIDs) == 0 {
		return nil
	}

	rows := make([]entities.DismissedNotification, 0, len(notificationIDs))
	for _, id := range notificationIDs {
		rows = append(rows, entities.DismissedNotification{UserID: userID, NotificationID: id})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}
