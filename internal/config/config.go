// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

// Package config loads FamTrack configuration via Koanf v2 with layered
// sources (highest priority wins): environment variables, optional YAML
// config file, built-in defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the FamTrack server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Tracking TrackingConfig `koanf:"tracking"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file path; ":memory:" is accepted for tests.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	// Threads is the DuckDB thread count; 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// SecurityConfig holds authentication and rate limiting settings.
type SecurityConfig struct {
	// JWTSecret signs session tokens. Minimum 32 characters.
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`
	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `koanf:"bcrypt_cost"`

	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	// LoginRateLimitReqs caps signin/signup attempts per window per IP.
	LoginRateLimitReqs int `koanf:"login_rate_limit_reqs"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// TrackingConfig holds the location pipeline settings.
type TrackingConfig struct {
	// SpeedThresholdKmh triggers a speed alert when a reported speed
	// strictly exceeds it. Zero or absent speed never triggers.
	SpeedThresholdKmh float64 `koanf:"speed_threshold_kmh"`
	// HistoryDays is the default lookback window for history queries.
	HistoryDays int `koanf:"history_days"`
	// BroadcastBuffer is the hub's pending-broadcast channel capacity.
	BroadcastBuffer int `koanf:"broadcast_buffer"`
	// ClientSendBuffer is the per-session outbound channel capacity;
	// sessions whose buffer fills are dropped (slow consumer).
	ClientSendBuffer int `koanf:"client_send_buffer"`
	// PingRatePerSec and PingBurst throttle inbound pings per session.
	PingRatePerSec float64 `koanf:"ping_rate_per_sec"`
	PingBurst      int     `koanf:"ping_burst"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters (got %d)", len(c.Security.JWTSecret))
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost must be 4-31, got %d", c.Security.BcryptCost)
	}
	if c.Tracking.SpeedThresholdKmh <= 0 {
		return fmt.Errorf("tracking.speed_threshold_kmh must be positive, got %v", c.Tracking.SpeedThresholdKmh)
	}
	if c.Tracking.HistoryDays <= 0 {
		return fmt.Errorf("tracking.history_days must be positive, got %d", c.Tracking.HistoryDays)
	}
	return nil
}
