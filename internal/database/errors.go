// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/famtrack/internal/logging"
)

// Sentinel errors returned by data access methods.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailExists indicates a signup collided with an existing account.
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCoordinates indicates a location event with non-finite
	// lat/lng reached the store. Such events are never persisted.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// closeQuietly closes a resource and explicitly ignores any error.
// Use in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // cleanup is best-effort
	}
}

// closeWithLog closes a resource and logs any error.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("failed to close resource")
	}
}
