package handlers

import (
	"net/http"

	"github.com/anonto42/travel-plans/backend/internal/models"
	"github.com/anonto42/travel-plans/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// MeHandler serves the signed-in user's own listings
type MeHandler struct {
	planRepository repositories.PlanRepository
}

func NewMeHandler(planRepo repositories.PlanRepository) *MeHandler {
	return &MeHandler{planRepository: planRepo}
}

func (h *MeHandler) RegisterMeRoutes(g *echo.Group) {
	g.GET("/me/plans", h.GetMyPlans)
	g.GET("/me/bookmarks", h.GetMyBookmarks)
}

// GetMyPlans lists every plan the caller authored, newest first
func (h *MeHandler) GetMyPlans(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	plans, err := h.planRepository.ListPlans(c.Request().Context(), repositories.PlanFilter{AuthorID: s.UserID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, models.ToSummaries(plans))
}

// GetMyBookmarks lists the caller's bookmarked plans, most recently bookmarked first
func (h *MeHandler) GetMyBookmarks(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}
	plans, err := h.planRepository.ListBookmarkedPlans(c.Request().Context(), s.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, models.ToSummaries(plans))
}
