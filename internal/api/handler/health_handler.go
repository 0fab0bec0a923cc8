package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthTimeout = 3 * time.Second

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler serves the liveness text and the dependency health report.
type HealthHandler struct {
	store   Pinger
	cache   Pinger
	started time.Time
	now     func() time.Time
}

// NewHealthHandler builds the health endpoints. cache may be nil when Redis
// is not configured.
func NewHealthHandler(store, cache Pinger) *HealthHandler {
	return &HealthHandler{
		store:   store,
		cache:   cache,
		started: time.Now(),
		now:     time.Now,
	}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Cache     string    `json:"cache,omitempty"`
	Uptime    float64   `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

// Root handles GET /.
//
// @Summary      Liveness text
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string
// @Router       / [get]
func (h *HealthHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, "Security agency API is running")
}

// Health handles GET /health. The report is 503 when the document store
// cannot be reached; an unreachable cache degrades the report but not the code.
//
// @Summary      Dependency health
// @Tags         health
// @Produce      json
// @Success      200  {object}  healthResponse
// @Failure      503  {object}  healthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	now := h.now()
	resp := healthResponse{
		Status:    "ok",
		Database:  "connected",
		Uptime:    now.Sub(h.started).Seconds(),
		Timestamp: now.UTC(),
	}
	code := http.StatusOK

	if err := h.store.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "disconnected"
		code = http.StatusServiceUnavailable
	}

	if h.cache != nil {
		resp.Cache = "connected"
		if err := h.cache.Ping(ctx); err != nil {
			resp.Cache = "disconnected"
			resp.Status = "degraded"
		}
	}

	return c.JSON(code, resp)
}
