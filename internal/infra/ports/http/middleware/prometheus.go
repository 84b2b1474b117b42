package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meetu-app/meetu-server/internal/application/metric"
)

// PrometheusMiddleware records request count, latency and error metrics per
// route.
func PrometheusMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			method := c.Request().Method
			endpoint := c.Path()

			err := next(c)

			duration := time.Since(start)

			statusCode := c.Response().Status
			if statusCode == 0 {
				statusCode = 200
			}

			if err != nil && statusCode < 400 {
				statusCode = 500
			}

			metric.RecordHTTPMetrics(method, endpoint, statusCode, duration)

			return err
		}
	}
}
