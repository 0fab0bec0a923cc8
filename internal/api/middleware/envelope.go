package middleware

import (
	"github.com/labstack/echo/v4"
)

// EnvelopeKey is the context key set on routes whose error bodies carry the
// {"success": false, "message": ...} envelope.
const EnvelopeKey = "envelope"

// Envelope marks every route of the group as enveloped.
func Envelope() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(EnvelopeKey, true)
			return next(c)
		}
	}
}

// Enveloped reports whether the current route uses the success envelope.
func Enveloped(c echo.Context) bool {
	v, _ := c.Get(EnvelopeKey).(bool)
	return v
}
