// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

// Package history post-processes location query results for the
// read-side API.
package history

import (
	"time"

	"github.com/tomtom215/famtrack/internal/models"
)

type hourBucket struct {
	year  int
	month time.Month
	day   int
	hour  int
}

func bucketOf(t time.Time) hourBucket {
	lt := t.In(time.Local)
	return hourBucket{
		year:  lt.Year(),
		month: lt.Month(),
		day:   lt.Day(),
		hour:  lt.Hour(),
	}
}

// Hourly downsamples an ascending event slice to at most one event per
// clock hour, keeping the earliest event of each hour. The input must
// already be sorted by timestamp ascending, which is how the store
// returns history. Hours with no events produce no output.
func Hourly(events []models.LocationEvent) []models.LocationEvent {
	if len(events) == 0 {
		return []models.LocationEvent{}
	}

	out := make([]models.LocationEvent, 0, len(events))
	var current hourBucket
	for i, event := range events {
		bucket := bucketOf(event.Timestamp)
		if i == 0 || bucket != current {
			out = append(out, event)
			current = bucket
		}
	}
	return out
}
