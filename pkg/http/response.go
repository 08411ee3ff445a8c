package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CacheControlPublic lets the CDN serve a response for 5 minutes and stale for a day while revalidating.
const CacheControlPublic = "public, s-maxage=300, stale-while-revalidate=86400"

// JSONResponse writes data with status.
func JSONResponse(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, data)
}

// CachedJSONResponse writes data with the public Cache-Control header.
func CachedJSONResponse(c echo.Context, status int, data interface{}) error {
	c.Response().Header().Set(echo.HeaderCacheControl, CacheControlPublic)
	return c.JSON(status, data)
}

// ErrorResponse writes {"error": message}.
func ErrorResponse(c echo.Context, status int, message string) error {
	return c.JSON(status, ErrorBody{Error: message})
}

// ValidationErrorResponse writes a 400 with each failed rule in details.
func ValidationErrorResponse(c echo.Context, details []ValidationError) error {
	msgs := make([]string, 0, len(details))
	for _, d := range details {
		msgs = append(msgs, d.Message)
	}
	return c.JSON(http.StatusBadRequest, ErrorBody{
		Error:   strings.Join(msgs, "; "),
		Code:    "ERR_VALIDATION",
		Details: details,
	})
}

// AppErrorResponse maps err through FromDomain and writes it.
func AppErrorResponse(c echo.Context, err error) error {
	appErr := FromDomain(err)
	if appErr == nil {
		appErr = InternalError("internal error")
	}
	return c.JSON(appErr.Status, ErrorBody{Error: appErr.Message, Code: appErr.Code})
}
