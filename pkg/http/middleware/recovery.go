package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "DataHub/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover turns a handler panic into a 500 {"error"} response.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					perr, ok := r.(error)
					if !ok {
						perr = fmt.Errorf("%v", r)
					}
					l.Error("http handler panic",
						applogger.String("route", routeLabel(c)),
						applogger.Error(perr),
						applogger.String("stack", string(debug.Stack())),
					)
					if !c.Response().Committed {
						err = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
					}
				}
			}()
			return next(c)
		}
	}
}
