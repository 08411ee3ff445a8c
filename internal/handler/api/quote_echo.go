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

type QuoteGetter interface {
	Get(ctx context.Context, ticker string) (*models.Quote, error)
}

// QuoteEchoHandler serves the latest quote of a ticker.
type QuoteEchoHandler struct {
	logger  *applogger.Logger
	quotes  QuoteGetter
	limiter middleware.Limiter
}

// NewQuoteEchoHandler builds the handler. A nil limiter disables rate limiting.
func NewQuoteEchoHandler(logger *applogger.Logger, quotes QuoteGetter, limiter middleware.Limiter) *QuoteEchoHandler {
	if logger == nil {
		logger = applogger.Nop()
	}
	return &QuoteEchoHandler{logger: logger, quotes: quotes, limiter: limiter}
}

func (h *QuoteEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/quote/:ticker", h.Quote, limited(h.limiter)...)
}

func (h *QuoteEchoHandler) Quote(c echo.Context) error {
	req := &models.TickerRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}

	q, err := h.quotes.Get(c.Request().Context(), req.Ticker)
	if err != nil {
		h.logger.Error("quote usecase error", applogger.String("ticker", req.Ticker), applogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.JSONResponse(c, http.StatusOK, q)
}

func limited(l middleware.Limiter) []echo.MiddlewareFunc {
	if l == nil {
		return nil
	}
	return []echo.MiddlewareFunc{middleware.RateLimit(l)}
}
