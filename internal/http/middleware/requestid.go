package middleware

import (
	echo "github.com/labstack/echo/v4"

	"github.com/acme/customer-service/internal/util"
)

// RequestID tags every request/response pair with a ULID unless the
// caller already supplied one.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = util.New()
			}
			c.Request().Header.Set(echo.HeaderXRequestID, rid)
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			return next(c)
		}
	}
}
