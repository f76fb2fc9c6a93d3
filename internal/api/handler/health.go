package handler

import (
	"net/http"

	"go.uber.org/zap"
)

// Health reports process liveness only; it never probes the platform.
func Health(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Index lists the available endpoints.
func Index(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"service": "gitlab-gateway",
			"endpoints": map[string]string{
				"/health":     "health check",
				"/permission": "POST to grant or change a user's role on a group or project",
				"/items":      "GET issues or merge requests created in a given year",
			},
		}

		writeJSON(w, logger, http.StatusOK, body)
	}
}
