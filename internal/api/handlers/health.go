package handlers

import (
	"net/http"
	"trailblazer-service/internal/api/dto"
)

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.HealthResponse{Status: "ok", Service: "trailblazer"})
}
