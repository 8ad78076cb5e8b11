package api

import (
	"net/http"
	"trailblazer-service/internal/api/handlers"
	"trailblazer-service/internal/config"
	"trailblazer-service/internal/platform/metrics"
	"trailblazer-service/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.ParkRepository, search config.SearchConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)

	parkHandler := handlers.NewParkHandler(repo, search)

	r.Get("/health", handlers.Health)
	r.Get("/parks", parkHandler.List)
	r.Get("/parks/{id}", parkHandler.Get)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
