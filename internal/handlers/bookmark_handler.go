package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/travel-plans/backend/internal/models"
	"github.com/anonto42/travel-plans/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// BookmarkHandler handles bookmark HTTP requests
type BookmarkHandler struct {
	bookmarkRepository repositories.BookmarkRepository
	planRepository     repositories.PlanRepository
}

// NewBookmarkHandler creates a new BookmarkHandler
func NewBookmarkHandler(bookmarkRepo repositories.BookmarkRepository, planRepo repositories.PlanRepository) *BookmarkHandler {
	return &BookmarkHandler{
		bookmarkRepository: bookmarkRepo,
		planRepository:     planRepo,
	}
}

// RegisterBookmarkRoutes registers bookmark routes
func (h *BookmarkHandler) RegisterBookmarkRoutes(g *echo.Group) {
	g.POST("/plans/:id/bookmark", h.BookmarkPlan)
	g.DELETE("/plans/:id/bookmark", h.UnbookmarkPlan)
}

// BookmarkPlan saves a plan for the caller
func (h *BookmarkHandler) BookmarkPlan(c echo.Context) error {
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

	isSaved, err := h.bookmarkRepository.IsPlanBookmarked(ctx, s.UserID, planID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if isSaved {
		return echo.NewHTTPError(http.StatusConflict, "Already bookmarked")
	}

	if err := h.bookmarkRepository.CreateBookmark(ctx, &models.Bookmark{UserID: s.UserID, PlanID: planID}); err != nil {
		if errors.Is(err, repositories.ErrAlreadyBookmarked) {
			return echo.NewHTTPError(http.StatusConflict, "Already bookmarked")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

// UnbookmarkPlan removes a plan from the caller's bookmarks
func (h *BookmarkHandler) UnbookmarkPlan(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}

	if err := h.bookmarkRepository.DeleteBookmark(c.Request().Context(), s.UserID, c.Param("id")); err != nil {
		if errors.Is(err, repositories.ErrBookmarkNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Bookmark not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
