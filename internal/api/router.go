// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/famtrack/internal/auth"
	"github.com/tomtom215/famtrack/internal/config"
)

// Router wires handlers, middleware, and configuration into the HTTP
// surface.
type Router struct {
	handler *Handlers
	authMW  *auth.Middleware
	cfg     *config.Config
}

// NewRouter creates the router for the given handler set.
func NewRouter(handler *Handlers, authMW *auth.Middleware, cfg *config.Config) *Router {
	return &Router{
		handler: handler,
		authMW:  authMW,
		cfg:     cfg,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   router.cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health endpoints: permissive rate limit for monitoring tools.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(1000, router.cfg.Security.RateLimitWindow))
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Authentication endpoints: strict rate limiting against brute force.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(httprate.LimitByIP(router.cfg.Security.LoginRateLimitReqs, router.cfg.Security.RateLimitWindow))
		r.Use(APISecurityHeaders())
		r.Post("/signup", router.handler.Signup)
		r.Post("/signin", router.handler.Signin)
		r.Post("/logout", router.handler.Logout)
	})

	// Data endpoints: all require a valid session.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(router.cfg.Security.RateLimitReqs, router.cfg.Security.RateLimitWindow))
		r.Use(APISecurityHeaders())
		r.Use(router.authMW.Authenticate)

		r.Get("/history/{userId}", router.handler.History)
		r.Delete("/history/{userId}", router.handler.DeleteHistory)
		r.Get("/users", router.handler.Users)
		r.Get("/users/{userId}/latest", router.handler.Latest)

		r.Route("/safezones", func(r chi.Router) {
			r.Get("/", router.handler.ListSafeZones)
			r.Post("/", router.handler.CreateSafeZone)
			r.Delete("/{id}", router.handler.DeleteSafeZone)
		})

		r.Get("/ws", router.handler.WebSocket)
	})

	// Observability
	r.Handle("/metrics", promhttp.Handler())

	return r
}
