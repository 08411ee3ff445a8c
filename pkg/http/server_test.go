package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"DataHub/internal/domain/errs"
	xhttp "DataHub/pkg/http"
	"DataHub/pkg/http/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type denyAfter struct{ n int }

func (d *denyAfter) Allow(string) bool {
	d.n--
	return d.n >= 0
}

func newTestServer(t *testing.T, h xhttp.HandlerFunc) *echo.Echo {
	t.Helper()
	reg := prometheus.NewRegistry()
	s := xhttp.NewServer([]xhttp.Handler{h}, xhttp.WithMetrics("/metrics", reg, reg))
	return s.Echo()
}

func do(e *echo.Echo, method, target string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) xhttp.ErrorBody {
	t.Helper()
	var body xhttp.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestServerMapsDomainErrors(t *testing.T) {
	e := newTestServer(t, func(e *echo.Echo) {
		e.GET("/validation", func(c echo.Context) error { return errs.Validation("ticker", "is required") })
		e.GET("/upstream", func(c echo.Context) error {
			return errs.Upstream("quote", "AAPL", assert.AnError)
		})
		e.GET("/store", func(c echo.Context) error { return errs.CacheIO("get", "k", assert.AnError) })
	})

	rec := do(e, http.MethodGet, "/validation", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Error, "ticker")

	rec = do(e, http.MethodGet, "/upstream", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "ERR_UPSTREAM", body.Code)
	assert.NotContains(t, body.Error, assert.AnError.Error())

	rec = do(e, http.MethodGet, "/store", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "ERR_STORE", decodeError(t, rec).Code)

	rec = do(e, http.MethodGet, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, decodeError(t, rec).Error)
}

func TestServerRecoversPanics(t *testing.T) {
	e := newTestServer(t, func(e *echo.Echo) {
		e.GET("/panic", func(c echo.Context) error { panic("boom") })
	})
	rec := do(e, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeError(t, rec).Error)
}

func TestServerCORSAndMetrics(t *testing.T) {
	e := newTestServer(t, func(e *echo.Echo) {
		e.GET("/ok", func(c echo.Context) error { return c.JSON(http.StatusOK, map[string]bool{"ok": true}) })
	})

	rec := do(e, http.MethodGet, "/ok", map[string]string{"Origin": "https://ativos.pt"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	rec = do(e, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `datahub_http_requests_total{method="GET",route="/ok",status="200"} 1`)
}

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	e.GET("/q", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, middleware.RateLimit(&denyAfter{n: 1}))

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/q", nil).Code)
	rec := do(e, http.MethodGet, "/q", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestCachedJSONResponse(t *testing.T) {
	e := echo.New()
	e.GET("/d", func(c echo.Context) error { return xhttp.CachedJSONResponse(c, http.StatusOK, map[string]int{"a": 1}) })
	rec := do(e, http.MethodGet, "/d", nil)
	assert.Equal(t, "public, s-maxage=300, stale-while-revalidate=86400", rec.Header().Get("Cache-Control"))
}
