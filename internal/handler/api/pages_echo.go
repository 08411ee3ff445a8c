package api

import (
	"context"
	"net/http"

	"DataHub/internal/domain/models"
	xhttp "DataHub/pkg/http"
	"DataHub/pkg/http/middleware"
	applogger "DataHub/pkg/logger"

	"github.com/labstack/echo/v4"
)

type StockPageGetter interface {
	Get(ctx context.Context, ticker string) (*models.StockPage, error)
}

type HomepageGetter interface {
	Get(ctx context.Context) (*models.Homepage, error)
}

type IndexPageGetter interface {
	IndexPage(ctx context.Context) (*models.IndexPage, error)
}

// PagesEchoHandler serves the aggregated page payloads.
type PagesEchoHandler struct {
	logger   *applogger.Logger
	stock    StockPageGetter
	homepage HomepageGetter
	index    IndexPageGetter
	limiter  middleware.Limiter
}

func NewPagesEchoHandler(logger *applogger.Logger, stock StockPageGetter, homepage HomepageGetter, index IndexPageGetter, limiter middleware.Limiter) *PagesEchoHandler {
	if logger == nil {
		logger = applogger.Nop()
	}
	return &PagesEchoHandler{logger: logger, stock: stock, homepage: homepage, index: index, limiter: limiter}
}

func (h *PagesEchoHandler) RegisterRoutes(e *echo.Echo) {
	mw := limited(h.limiter)
	e.GET("/api/stock/:ticker", h.Stock, mw...)
	e.GET("/api/homepage", h.Homepage, mw...)
	e.GET("/api/index", h.Index, mw...)
}

func (h *PagesEchoHandler) Stock(c echo.Context) error {
	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}

	page, err := h.stock.Get(c.Request().Context(), req.Ticker)
	if err != nil {
		h.logger.Error("stock page usecase error", applogger.String("ticker", req.Ticker), applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CachedJSONResponse(c, http.StatusOK, page)
}

func (h *PagesEchoHandler) Homepage(c echo.Context) error {
	page, err := h.homepage.Get(c.Request().Context())
	if err != nil {
		h.logger.Error("homepage usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CachedJSONResponse(c, http.StatusOK, page)
}

func (h *PagesEchoHandler) Index(c echo.Context) error {
	page, err := h.index.IndexPage(c.Request().Context())
	if err != nil {
		h.logger.Error("index page usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CachedJSONResponse(c, http.StatusOK, page)
}
