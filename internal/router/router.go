// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and the middleware chain for the
// themekit API.
package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"themekit/internal/handlers"
	"themekit/internal/middleware"
)

// New creates the chi router with every /api route and global middleware
// wired up. corsOrigin is the single browser origin allowed to call the API.
func New(themes *handlers.Themes, users *handlers.Users, corsOrigin string) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.CORS(corsOrigin))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Get("/presets", handlers.Presets)
		r.Route("/themes", themes.Routes)
		r.Route("/users", users.Routes)
	})

	return r
}
