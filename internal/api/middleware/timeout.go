package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// SelectiveTimeout bounds every request context with defaultTimeout, except
// for paths under one of longPaths which get longTimeout. Search requests
// fan out to slow upstreams and need more headroom than metadata endpoints.
func SelectiveTimeout(defaultTimeout, longTimeout time.Duration, longPaths ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			timeout := defaultTimeout
			for _, prefix := range longPaths {
				if strings.HasPrefix(c.Request().URL.Path, prefix) {
					timeout = longTimeout
					break
				}
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
