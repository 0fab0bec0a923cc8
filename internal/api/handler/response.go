package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// envelope is the success body of message and guard routes.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data"`
}

// ErrorResponse is the error body of user routes and unmatched paths.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ErrorEnvelope is the error body of message and guard routes.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

func okWithMessage(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{Success: true, Message: message, Data: data})
}

func okList(c echo.Context, count int, data any) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Count: &count, Data: data})
}

// invalidPayload is returned when the body cannot be decoded into the request type.
func invalidPayload() error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
}

// pathParam returns the named path parameter with percent-escapes decoded.
// Echo matches on the raw path when the request carries one and leaves the
// escapes in place.
func pathParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return value, nil
	}
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return "", invalidPayload()
	}
	return decoded, nil
}
