// Package router sets up all HTTP routes and middleware chains for the
// marketkit API. Marketplace provisioning sits behind its own rate limiter.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"marketkit/internal/handlers"
	"marketkit/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. signupLimiter guards marketplace creation and
// may be nil.
func New(api *handlers.API, signupLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(methodNotAllowedHandler)

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api/marketplaces", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if signupLimiter != nil {
				r.Use(signupLimiter.Middleware)
			}
			r.Post("/", api.CreateMarketplace)
		})

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", api.GetMarketplace)
			r.Get("/categories/tree", api.CategoryTree)

			r.Route("/listing-shapes", func(r chi.Router) {
				r.Get("/", api.ListShapes)
				r.Post("/", api.CreateShape)
				r.Get("/directions", api.ShapeDirections)
				r.Get("/{shapeID}", api.GetShape)
				r.Put("/{shapeID}", api.UpdateShape)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"not found"}`))
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte(`{"error":"method not allowed"}`))
}
