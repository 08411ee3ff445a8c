package api

import (
	"context"
	"net/http"

	"DataHub/internal/domain/models"
	xhttp "DataHub/pkg/http"
	applogger "DataHub/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Health(ctx context.Context) error
}

type SystemEchoHandler struct {
	logger *applogger.Logger
	store  Pinger
}

func NewSystemEchoHandler(logger *applogger.Logger, store Pinger) *SystemEchoHandler {
	if logger == nil {
		logger = applogger.Nop()
	}
	return &SystemEchoHandler{logger: logger, store: store}
}

func (h *SystemEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/health", h.Health)
	e.GET("/api/ready", h.Ready)
}

// Health is a liveness probe and never touches dependencies.
func (h *SystemEchoHandler) Health(c echo.Context) error {
	return xhttp.JSONResponse(c, http.StatusOK, models.HealthResponse{OK: true})
}

// Ready fails with 503 while the store is unreachable.
func (h *SystemEchoHandler) Ready(c echo.Context) error {
	if h.store != nil {
		if err := h.store.Health(c.Request().Context()); err != nil {
			h.logger.Warn("readiness check failed", applogger.Error(err))
			return xhttp.JSONResponse(c, http.StatusServiceUnavailable, models.HealthResponse{OK: false})
		}
	}
	return xhttp.JSONResponse(c, http.StatusOK, models.HealthResponse{OK: true})
}
