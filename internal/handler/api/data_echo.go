package api

import (
	"context"
	"net/http"
	"strings"

	"DataHub/internal/domain/errs"
	"DataHub/internal/domain/models"
	xhttp "DataHub/pkg/http"
	applogger "DataHub/pkg/logger"
	"DataHub/pkg/util"

	"github.com/labstack/echo/v4"
)

// DataResolver answers data keys.
type DataResolver interface {
	Resolve(ctx context.Context, key string, q models.SeriesQuery) (models.Resolution, error)
	ResolveBatch(ctx context.Context, keys []string, q models.SeriesQuery) (models.BatchResolution, error)
}

// Inventory lists the store contents.
type Inventory interface {
	Inventory(ctx context.Context) (*models.Inventory, error)
}

// DataEchoHandler serves /api/data.
type DataEchoHandler struct {
	logger    *applogger.Logger
	resolver  DataResolver
	inventory Inventory
}

func NewDataEchoHandler(logger *applogger.Logger, resolver DataResolver, inventory Inventory) *DataEchoHandler {
	if logger == nil {
		logger = applogger.Nop()
	}
	return &DataEchoHandler{logger: logger, resolver: resolver, inventory: inventory}
}

func (h *DataEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/data")
	g.GET("/debug", h.Debug)
	g.GET("/:dataKey", h.Data)
}

// Data resolves the path key, or every key of ?keys= when present.
func (h *DataEchoHandler) Data(c echo.Context) error {
	req := &models.DataRequest{}
	if err := c.Bind(req); err != nil {
		return xhttp.ErrorResponse(c, http.StatusBadRequest, "invalid request")
	}
	c.Response().Header().Set(echo.HeaderCacheControl, xhttp.CacheControlPublic)

	q := models.SeriesQuery{Limit: util.ParseLimit(req.Limit)}
	if since := strings.TrimSpace(req.Since); since != "" {
		d, err := util.NormalizeDate(since)
		if err != nil {
			return xhttp.ErrorResponse(c, http.StatusBadRequest, `query parameter "since" must be a YYYY-MM-DD date`)
		}
		q.Since = d
	}
	if req.Keys != "" {
		return h.batch(c, util.SplitKeys(req.Keys), q)
	}

	res, err := h.resolver.Resolve(c.Request().Context(), req.DataKey, q)
	if err != nil {
		h.logger.Error("data resolve error", applogger.String("key", req.DataKey), applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if !res.Found() {
		return xhttp.AppErrorResponse(c, errs.NotFound(res.Key))
	}
	return xhttp.JSONResponse(c, http.StatusOK, models.DataResponse{OK: true, Kind: res.Kind, Key: res.Key, Data: res.Data})
}

func (h *DataEchoHandler) batch(c echo.Context, keys []string, q models.SeriesQuery) error {
	if len(keys) == 0 {
		return xhttp.ErrorResponse(c, http.StatusBadRequest, `query parameter "keys" is empty`)
	}
	out, err := h.resolver.ResolveBatch(c.Request().Context(), keys, q)
	if err != nil {
		h.logger.Error("data batch resolve error", applogger.Strings("keys", keys), applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	data := make(map[string]any, len(out.Found))
	for k, res := range out.Found {
		data[k] = res.Data
	}
	if len(out.NotFound) > 0 {
		return xhttp.JSONResponse(c, http.StatusNotFound, models.BatchDataResponse{Data: data, NotFound: out.NotFound})
	}
	return xhttp.JSONResponse(c, http.StatusOK, models.BatchDataResponse{OK: true, Data: data})
}

// Debug lists every stored indicator and series.
func (h *DataEchoHandler) Debug(c echo.Context) error {
	inv, err := h.inventory.Inventory(c.Request().Context())
	if err != nil {
		h.logger.Error("data inventory error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.JSONResponse(c, http.StatusOK, inv)
}
