package handler

import (
	"context"
	"net/http"
	"time"
)

const readyzTimeout = 5 * time.Second

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db    HealthChecker
	cache HealthChecker
}

// NewHealthHandler creates a new HealthHandler. Nil checkers are reported
// as not configured instead of failing readiness.
func NewHealthHandler(db, cache HealthChecker) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// HealthResponse is the body for both probe endpoints.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz handles GET /healthz. It only proves the process is serving;
// dependency state is the readiness probe's job.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz handles GET /readyz. Postgres and Redis are both required for
// serving traffic; either failing returns 503 so the instance drops out
// of rotation.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyzTimeout)
	defer cancel()

	checks := make(map[string]string, 2)
	healthy := true

	for name, dep := range map[string]HealthChecker{
		"postgres": h.db,
		"redis":    h.cache,
	} {
		result, ok := checkDependency(ctx, dep)
		checks[name] = result
		healthy = healthy && ok
	}

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, HealthResponse{Status: status, Checks: checks})
}

// checkDependency pings a single dependency. A nil checker counts as
// healthy so optional dependencies do not block readiness.
func checkDependency(ctx context.Context, dep HealthChecker) (string, bool) {
	if dep == nil {
		return "not configured", true
	}
	if err := dep.Ping(ctx); err != nil {
		return "error: " + err.Error(), false
	}
	return "ok", true
}
