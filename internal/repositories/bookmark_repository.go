package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/travel-plans/backend/internal/models"
	"gorm.io/gorm"
)

// BookmarkRepository defines the interface for bookmark operations
type BookmarkRepository interface {
	CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error
	DeleteBookmark(ctx context.Context, userID, planID string) error
	IsPlanBookmarked(ctx context.Context, userID, planID string) (bool, error)
}

// PostgresBookmarkRepository implements BookmarkRepository
type PostgresBookmarkRepository struct {
	db *gorm.DB
}

func NewPostgresBookmarkRepository(db *gorm.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{db: db}
}

func (r *PostgresBookmarkRepository) CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	err := r.db.WithContext(ctx).Omit("Plan").Create(bookmark).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyBookmarked
	}
	return err
}

func (r *PostgresBookmarkRepository) DeleteBookmark(ctx context.Context, userID, planID string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND plan_id = ?", userID, planID).Delete(&models.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookmarkNotFound
	}
	return nil
}

func (r *PostgresBookmarkRepository) IsPlanBookmarked(ctx context.Context, userID, planID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Bookmark{}).Where("user_id = ? AND plan_id = ?", userID, planID).Count(&count).Error
	return count > 0, err
}
