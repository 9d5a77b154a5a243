package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/travel-plans/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, planID, userID string) error
	GetLikesCountByPlanID(ctx context.Context, planID string) (int64, error)
	HasUserLikedPlan(ctx context.Context, planID, userID string) (bool, error)
}

// PostgresLikeRepository implements LikeRepository over gorm
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts the like row. The (user_id, plan_id) unique index is the
// authoritative guard; a violation is reported as ErrAlreadyLiked.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	if err := r.db.WithContext(ctx).Omit("Plan").Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyLiked
		}
		return err
	}
	return nil
}

// DeleteLike removes the like row, or returns ErrLikeNotFound when there was none
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, planID, userID string) error {
	res := r.db.WithContext(ctx).Where("plan_id = ? AND user_id = ?", planID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// GetLikesCountByPlanID counts the likes on a plan
func (r *PostgresLikeRepository) GetLikesCountByPlanID(ctx context.Context, planID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("plan_id = ?", planID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// HasUserLikedPlan checks if a user has liked a specific plan
func (r *PostgresLikeRepository) HasUserLikedPlan(ctx context.Context, planID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("plan_id = ? AND user_id = ?", planID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
