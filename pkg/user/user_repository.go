package user

import (
	"context"
	"time"

	"turmeric-trace/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	UserRepository interface {
		CreateSession(ctx context.Context, session *entities.Session) error
		GetSessionByID(ctx context.Context, id string) (*entities.Session, error)
		RevokeSession(ctx context.Context, id string, at time.Time) error
		DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error)

		GetPreference(ctx context.Context, userID string) (*entities.UserPreference, error)
		SavePreference(ctx context.Context, pref *entities.UserPreference) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateSession(ctx context.Context, session *entities.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *userRepository) GetSessionByID(ctx context.Context, id string) (*entities.Session, error) {
	var session entities.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *userRepository) RevokeSession(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entities.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at).Error
}

func (r *userRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Unscoped().
		Where("expires_at < ?", before).
		Delete(&entities.Session{})
	return res.RowsAffected, res.Error
}

func (r *userRepository) GetPreference(ctx context.Context, userID string) (*entities.UserPreference, error) {
	var pref entities.UserPreference
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *userRepository) SavePreference(ctx context.Context, pref *entities.UserPreference) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"sidebar_open", "updated_at"}),
	}).Create(pref).Error
}
