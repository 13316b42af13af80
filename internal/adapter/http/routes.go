// Package http provides the HTTP handler layer for the fare discovery API.
package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all fare discovery API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *SearchHandler) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	// API v1 group
	api := e.Group("/api/v1")

	// Search group
	search := api.Group("/search")
	search.POST("/anywhere", h.SearchAnywhere)
	search.POST("/flexible", h.SearchFlexible)

	// Rate-limit status for the calling identity
	api.GET("/limits", h.Limits)
}

// RegisterRoutesWithMiddleware registers routes with custom middleware.
// This allows for endpoint-specific middleware configuration.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *SearchHandler, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix, no middleware)
	e.GET("/health", h.Health)

	// API v1 group with middleware
	api := e.Group("/api/v1", middleware...)

	// Search group
	search := api.Group("/search")
	search.POST("/anywhere", h.SearchAnywhere)
	search.POST("/flexible", h.SearchFlexible)

	// Rate-limit status for the calling identity
	api.GET("/limits", h.Limits)
}
