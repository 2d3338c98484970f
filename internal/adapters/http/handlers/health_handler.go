package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/review-comments/internal/ports"
)

const (
	statusOK       = "ok"
	statusReady    = "ready"
	statusDegraded = "degraded"
	statusNotReady = "not_ready"
)

// HealthHandler handles liveness and readiness HTTP endpoints.
//
// Readiness distinguishes the checks the service cannot run without (the
// event journal and the bus) from downstream services. A failing downstream
// only degrades the service: commands are still recorded and the reactors
// catch up once it recovers.
type HealthHandler struct {
	registry ports.HealthRegistry
	critical map[string]bool
}

// NewHealthHandler creates a HealthHandler over registry. critical names the
// checks whose failure makes the service not ready. With no names every
// check is critical.
func NewHealthHandler(registry ports.HealthRegistry, critical ...string) *HealthHandler {
	h := &HealthHandler{registry: registry}
	if len(critical) > 0 {
		h.critical = make(map[string]bool, len(critical))
		for _, name := range critical {
			h.critical[name] = true
		}
	}
	return h
}

// Liveness handles GET /health/live. Always returns 200 OK.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": statusOK})
}

// Readiness handles GET /health/ready. It returns 503 when a critical check
// fails and 200 otherwise, reporting "degraded" when only downstream checks
// fail.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	results := h.registry.CheckAll(r.Context())

	checks := make(map[string]string, len(results))
	status := statusReady
	for name, err := range results {
		if err == nil {
			checks[name] = statusOK
			continue
		}
		checks[name] = err.Error()
		switch {
		case h.isCritical(name):
			status = statusNotReady
		case status == statusReady:
			status = statusDegraded
		}
	}

	code := http.StatusOK
	if status == statusNotReady {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, r, code, map[string]any{
		"status": status,
		"checks": checks,
	})
}

func (h *HealthHandler) isCritical(name string) bool {
	return h.critical == nil || h.critical[name]
}
