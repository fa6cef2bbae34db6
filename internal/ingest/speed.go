// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package ingest

// Verdict is the result of comparing a reported speed against the
// configured threshold.
type Verdict int

const (
	// VerdictOK means the speed is within the allowed limit.
	VerdictOK Verdict = iota
	// VerdictExceeded means the speed is above the allowed limit.
	VerdictExceeded
)

// EvaluateSpeed compares a reported speed in km/h against a threshold.
// Only speeds strictly greater than the threshold trigger an alert, so
// a stationary device (speed 0) never alerts regardless of the
// configured limit.
func EvaluateSpeed(speedKmh, thresholdKmh float64) Verdict {
	if speedKmh > thresholdKmh {
		return VerdictExceeded
	}
	return VerdictOK
}
