// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

// Package api provides the HTTP surface: authentication endpoints,
// location history and latest-position queries, safe zone CRUD, the
// WebSocket upgrade endpoint, and health checks.
//
// Routing uses Chi with go-chi/cors and go-chi/httprate. All responses
// share the envelope in models.APIResponse; all data endpoints require
// a valid session token (see internal/auth).
package api
