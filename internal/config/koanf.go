// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/famtrack/config.yaml",
	"/etc/famtrack/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied. Defaults are
// loaded first, then overridden by config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    5000,
			Timeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Path:      "/data/famtrack.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = runtime.NumCPU()
		},
		Security: SecurityConfig{
			JWTSecret:          "",
			SessionTimeout:     7 * 24 * time.Hour,
			BcryptCost:         10,
			RateLimitReqs:      100,
			RateLimitWindow:    time.Minute,
			LoginRateLimitReqs: 5,
			CORSOrigins:        []string{"*"},
		},
		Tracking: TrackingConfig{
			SpeedThresholdKmh: 60,
			HistoryDays:       7,
			BroadcastBuffer:   256,
			ClientSendBuffer:  256,
			PingRatePerSec:    10,
			PingBurst:         20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration with layered sources:
//  1. Defaults from struct
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
//
// Environment variable names map to koanf paths:
// SERVER_PORT -> server.port, SECURITY_JWT_SECRET -> security.jwt_secret,
// TRACKING_SPEED_THRESHOLD_KMH -> tracking.speed_threshold_kmh.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are paths whose env-var values arrive as comma-separated
// strings but unmarshal into []string.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envPrefixes limits which environment variables are considered, so that
// unrelated process environment does not leak into the config tree.
var envPrefixes = []string{"SERVER_", "DATABASE_", "SECURITY_", "TRACKING_", "LOGGING_"}

// envTransform maps SECTION_FIELD_NAME to section.field_name. Variables
// outside the known sections are ignored.
func envTransform(key string) string {
	matched := false
	for _, p := range envPrefixes {
		if strings.HasPrefix(key, p) {
			matched = true
			break
		}
	}
	if !matched {
		return ""
	}
	key = strings.ToLower(key)
	// Only the first underscore separates section from field.
	return strings.Replace(key, "_", ".", 1)
}
