package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness reports whether the process is alive.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// HealthDependenciesHandler serves the readiness probe, pinging the session
// store and the link-job ledger.
type HealthDependenciesHandler struct {
	db  *mongo.Database
	rdb *redis.Client
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{db: db, rdb: rdb}
}

// Readiness reports whether the gateway's own dependencies are reachable. The
// salon API is deliberately excluded: the gateway stays ready through an
// upstream outage and surfaces 502s per request instead.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health/ready [get]
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	deps := map[string]string{"redis": "ok", "mongo": "ok"}
	healthy := true

	pingCtx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.rdb.Ping(pingCtx).Err(); err != nil {
		deps["redis"] = err.Error()
		healthy = false
	}
	if err := h.db.Client().Ping(pingCtx, readpref.Primary()); err != nil {
		deps["mongo"] = err.Error()
		healthy = false
	}

	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, deps)
	}
	return c.JSON(http.StatusOK, deps)
}
