package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/travel-plans/backend/internal/models"
	"gorm.io/gorm"
)

// ListLimit caps the public listing and search endpoints. There is no cursor.
const ListLimit = 20

const likeCountColumn = "(SELECT COUNT(*) FROM likes WHERE likes.plan_id = plans.id) AS like_count"

// PlanFilter narrows a plan listing. Zero values mean "no filter".
type PlanFilter struct {
	Destination string
	// Contains switches Destination from an exact match to a substring match
	Contains bool
	// Days is matched exactly when set, including zero and negative values
	Days     *int
	AuthorID string
	Limit    int
}

// PlanRepository defines the interface for plan data operations
type PlanRepository interface {
	CreatePlan(ctx context.Context, plan *models.Plan) error
	GetPlanByID(ctx context.Context, id string) (*models.Plan, error)
	PlanExists(ctx context.Context, id string) (bool, error)
	ListPlans(ctx context.Context, filter PlanFilter) ([]models.Plan, error)
	ListBookmarkedPlans(ctx context.Context, userID string) ([]models.Plan, error)
}

// PostgresPlanRepository implements PlanRepository over gorm
type PostgresPlanRepository struct {
	db *gorm.DB
}

// NewPostgresPlanRepository creates a new PostgresPlanRepository
func NewPostgresPlanRepository(db *gorm.DB) *PostgresPlanRepository {
	return &PostgresPlanRepository{db: db}
}

// CreatePlan writes the plan with all of its days and spots in one transaction.
// Either every row lands or none does.
func (r *PostgresPlanRepository) CreatePlan(ctx context.Context, plan *models.Plan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Author").Create(plan).Error
	})
}

// GetPlanByID loads a plan with its schedule, author and like count
func (r *PostgresPlanRepository) GetPlanByID(ctx context.Context, id string) (*models.Plan, error) {
	var plan models.Plan
	err := r.summaries(ctx).
		Preload("DayList", func(db *gorm.DB) *gorm.DB {
			return db.Order("days.day_number ASC")
		}).
		Preload("DayList.Spots", func(db *gorm.DB) *gorm.DB {
			return db.Order("spots.order_index ASC")
		}).
		Where("plans.id = ?", id).
		Take(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// PlanExists checks whether a plan with the given ID exists
func (r *PostgresPlanRepository) PlanExists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Plan{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListPlans returns plan summaries, newest first
func (r *PostgresPlanRepository) ListPlans(ctx context.Context, filter PlanFilter) ([]models.Plan, error) {
	q := r.summaries(ctx)
	if filter.Destination != "" {
		if filter.Contains {
			q = q.Where("plans.destination LIKE ? ESCAPE '\\'", "%"+escapeLike(filter.Destination)+"%")
		} else {
			q = q.Where("plans.destination = ?", filter.Destination)
		}
	}
	if filter.Days != nil {
		q = q.Where("plans.days = ?", *filter.Days)
	}
	if filter.AuthorID != "" {
		q = q.Where("plans.author_id = ?", filter.AuthorID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var plans []models.Plan
	if err := q.Order("plans.created_at DESC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// ListBookmarkedPlans returns the plans a user bookmarked, ordered by when they were
// bookmarked rather than when the plan was created
func (r *PostgresPlanRepository) ListBookmarkedPlans(ctx context.Context, userID string) ([]models.Plan, error) {
	var plans []models.Plan
	err := r.summaries(ctx).
		Joins("JOIN bookmarks ON bookmarks.plan_id = plans.id").
		Where("bookmarks.user_id = ?", userID).
		Order("bookmarks.created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *PostgresPlanRepository) summaries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Plan{}).
		Select("plans.*, " + likeCountColumn).
		Preload("Author")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
