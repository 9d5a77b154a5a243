package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/travel-plans/backend/internal/models"
	"github.com/anonto42/travel-plans/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	planRepository repositories.PlanRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, planRepo repositories.PlanRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		planRepository: planRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/plans/:id/like", h.LikePlan)
	g.DELETE("/plans/:id/like", h.UnlikePlan)
}

// LikePlan likes a plan and returns the new like count
func (h *LikeHandler) LikePlan(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	planID := c.Param("id")

	exists, err := h.planRepository.PlanExists(ctx, planID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !exists {
		return echo.NewHTTPError(http.StatusNotFound, "Plan not found")
	}

	// Fast path only; the unique index still rejects a concurrent duplicate below.
	hasLiked, err := h.likeRepository.HasUserLikedPlan(ctx, planID, s.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hasLiked {
		return echo.NewHTTPError(http.StatusConflict, "Already liked")
	}

	if err := h.likeRepository.CreateLike(ctx, &models.Like{UserID: s.UserID, PlanID: planID}); err != nil {
		if errors.Is(err, repositories.ErrAlreadyLiked) {
			return echo.NewHTTPError(http.StatusConflict, "Already liked")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	count, err := h.likeRepository.GetLikesCountByPlanID(ctx, planID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, echo.Map{"count": count})
}

// UnlikePlan removes the caller's like and returns the new like count
func (h *LikeHandler) UnlikePlan(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	planID := c.Param("id")

	if err := h.likeRepository.DeleteLike(ctx, planID, s.UserID); err != nil {
		if errors.Is(err, repositories.ErrLikeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Like not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	count, err := h.likeRepository.GetLikesCountByPlanID(ctx, planID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}
