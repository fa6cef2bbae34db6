// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

// Package supervisor provides Suture-based process supervision for FamTrack.
//
// The supervisor tree isolates the long-running subsystems from each other:
// the WebSocket hub lives in the messaging layer and the HTTP server in the
// API layer, each wrapped as a suture.Service. A crash in one layer is
// restarted with backoff without disturbing the other.
package supervisor
