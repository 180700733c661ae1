package api

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger logs basic request details and latency.
func RequestLogger(logger *log.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = log.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			logger.Printf(
				"request method=%s path=%s status=%d duration=%s",
				c.Request().Method,
				c.Request().URL.Path,
				c.Response().Status,
				time.Since(start),
			)
			return nil
		}
	}
}
