package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/anonto42/travel-plans/backend/internal/middleware"
	"github.com/anonto42/travel-plans/backend/internal/models"
	"github.com/anonto42/travel-plans/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
)

// LatestLimit is how many plans the home feed shows
const LatestLimit = 6

// PlanHandler handles HTTP requests related to plans
type PlanHandler struct {
	planRepository     repositories.PlanRepository
	likeRepository     repositories.LikeRepository
	bookmarkRepository repositories.BookmarkRepository
	userRepository     repositories.UserRepository
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(
	planRepo repositories.PlanRepository,
	likeRepo repositories.LikeRepository,
	bookmarkRepo repositories.BookmarkRepository,
	userRepo repositories.UserRepository,
) *PlanHandler {
	return &PlanHandler{
		planRepository:     planRepo,
		likeRepository:     likeRepo,
		bookmarkRepository: bookmarkRepo,
		userRepository:     userRepo,
	}
}

// RegisterPlanRoutes registers plan-related routes
func (h *PlanHandler) RegisterPlanRoutes(g *echo.Group) {
	g.GET("/plans", h.ListPlans)
	g.GET("/plans/search", h.SearchPlans)
	g.GET("/plans/latest", h.GetLatestPlans)
	g.POST("/plans", h.CreatePlan)
	g.GET("/plans/:id", h.GetPlan)
}

// ListPlans lists plans whose destination matches exactly
func (h *PlanHandler) ListPlans(c echo.Context) error {
	return h.listPlans(c, false)
}

// SearchPlans lists plans whose destination contains the query
func (h *PlanHandler) SearchPlans(c echo.Context) error {
	return h.listPlans(c, true)
}

func (h *PlanHandler) listPlans(c echo.Context, contains bool) error {
	filter := repositories.PlanFilter{
		Destination: c.QueryParam("destination"),
		Contains:    contains,
		Limit:       repositories.ListLimit,
	}
	// non-numeric days are ignored rather than rejected
	if days, err := strconv.Atoi(c.QueryParam("days")); err == nil {
		filter.Days = &days
	}

	plans, err := h.planRepository.ListPlans(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, models.ToSummaries(plans))
}

// GetLatestPlans returns the newest plans for the home feed
func (h *PlanHandler) GetLatestPlans(c echo.Context) error {
	plans, err := h.planRepository.ListPlans(c.Request().Context(), repositories.PlanFilter{Limit: LatestLimit})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, models.ToSummaries(plans))
}

// GetPlan returns a plan with its schedule. With a session it also reports whether
// the caller liked or bookmarked it.
func (h *PlanHandler) GetPlan(c echo.Context) error {
	ctx := c.Request().Context()
	planID := c.Param("id")

	plan, err := h.planRepository.GetPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Plan not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var isLiked, isBookmarked bool
	if s := middleware.CurrentSession(c); s != nil {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			isLiked, err = h.likeRepository.HasUserLikedPlan(gctx, planID, s.UserID)
			return err
		})
		g.Go(func() (err error) {
			isBookmarked, err = h.bookmarkRepository.IsPlanBookmarked(gctx, s.UserID, planID)
			return err
		})
		if err := g.Wait(); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, plan.ToDetail(isLiked, isBookmarked))
}

// createPlanPayload keeps the checked fields raw so a wrong JSON type is reported
// as a validation failure for that field, in field order.
type createPlanPayload struct {
	Destination  json.RawMessage `json:"destination"`
	Days         json.RawMessage `json:"days"`
	ThumbnailURL *string         `json:"thumbnailUrl"`
	DayList      json.RawMessage `json:"dayList"`
}

func (p *createPlanPayload) decode() (*models.CreatePlanRequest, error) {
	req := &models.CreatePlanRequest{ThumbnailURL: p.ThumbnailURL}
	// an empty thumbnail means none
	if req.ThumbnailURL != nil && *req.ThumbnailURL == "" {
		req.ThumbnailURL = nil
	}

	if err := json.Unmarshal(p.Destination, &req.Destination); err != nil || req.Destination == "" {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, "destination is required")
	}
	// any JSON number is accepted as long as it is a positive whole count, so 2.0 is 2
	var days float64
	if err := json.Unmarshal(p.Days, &days); err != nil || days < 1 || days > math.MaxInt32 || days != math.Trunc(days) {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, "days must be a positive number")
	}
	req.Days = int(days)
	if !bytes.HasPrefix(bytes.TrimSpace(p.DayList), []byte("[")) {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, "dayList is required")
	}
	if err := json.Unmarshal(p.DayList, &req.DayList); err != nil {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, "dayList is malformed")
	}
	if len(req.DayList) == 0 {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, "dayList must contain at least one day")
	}
	return req, nil
}

// CreatePlan creates a plan with its days and spots in one write
func (h *PlanHandler) CreatePlan(c echo.Context) error {
	s, err := requireSession(c)
	if err != nil {
		return err
	}

	var payload createPlanPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Invalid request payload")
	}
	req, err := payload.decode()
	if err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.userRepository.UpsertUser(ctx, &models.User{ID: s.UserID, Name: s.UserName}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	plan := req.ToPlan(s.UserID)
	if err := h.planRepository.CreatePlan(ctx, plan); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"id": plan.ID})
}
