package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthHandler reports whether the service and its database are reachable
type HealthHandler struct {
	db        *gorm.DB
	startedAt time.Time
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db, startedAt: time.Now()}
}

func (h *HealthHandler) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	status, code, dbErr := "healthy", http.StatusOK, ""
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status, code, dbErr = "unhealthy", http.StatusServiceUnavailable, err.Error()
	}

	return c.JSON(code, echo.Map{
		"status":     status,
		"service":    "travel-plans-api",
		"uptime_sec": int(time.Since(h.startedAt).Seconds()),
		"database":   echo.Map{"ok": dbErr == "", "err": dbErr},
	})
}
