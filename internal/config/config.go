// Package config centralizes application configuration into typed structs.
// Defaults cover local development; a handful of environment variables
// override the settings that differ between deployments.
package config

import (
	"os"
	"time"
)

type Config struct {
	Server       ServerConfig
	Crowd        CrowdConfig
	Sweep        SweepConfig
	Notification NotificationConfig
	Catalog      CatalogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// CrowdConfig controls the crowd store.
type CrowdConfig struct {
	// FreshnessTTL is how long a snapshot stays usable before it is
	// resynthesized on read and excluded from overcrowded listings.
	FreshnessTTL time.Duration
	// DefaultCapacity is assumed for locations without a known capacity.
	DefaultCapacity int
	// SimulatedFallback enables heuristic synthesis when no fresh snapshot
	// exists. When disabled, lookups of absent locations fail instead.
	SimulatedFallback bool
	// SearchRadiusMeters bounds the alternative search.
	SearchRadiusMeters float64
}

// SweepConfig controls the background timers.
type SweepConfig struct {
	ScanInterval  time.Duration // overcrowded scan & alert
	RetryInterval time.Duration // pending queue retry
}

// NotificationConfig controls push delivery.
type NotificationConfig struct {
	// QueueMaxAge is how old a pending notification may grow before a failed
	// retry drops it instead of re-queueing.
	QueueMaxAge time.Duration
	// WriteTimeout bounds a single push transport write.
	WriteTimeout time.Duration
	// JWTSecret, when set, is used to verify tokens presented on the push
	// channel's auth frame. Empty means the frame's user id is trusted as-is.
	JWTSecret string
}

// CatalogConfig locates the read-only location catalog.
type CatalogConfig struct {
	// DBPath is the SQLite catalog file. Empty uses the built-in seed set.
	DBPath string
}

// NewDefaultConfig returns a Config populated with defaults, then applies
// environment overrides.
func NewDefaultConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Crowd: CrowdConfig{
			FreshnessTTL:       5 * time.Minute,
			DefaultCapacity:    1000,
			SimulatedFallback:  true,
			SearchRadiusMeters: 5000,
		},
		Sweep: SweepConfig{
			ScanInterval:  5 * time.Minute,
			RetryInterval: 1 * time.Minute,
		},
		Notification: NotificationConfig{
			QueueMaxAge:  30 * time.Minute,
			WriteTimeout: 5 * time.Second,
		},
		Catalog: CatalogConfig{},
	}

	cfg.Server.Port = envOrDefault("CROWD_PORT", cfg.Server.Port)
	cfg.Catalog.DBPath = envOrDefault("CROWD_CATALOG_DB", cfg.Catalog.DBPath)
	cfg.Notification.JWTSecret = envOrDefault("CROWD_JWT_SECRET", cfg.Notification.JWTSecret)

	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
