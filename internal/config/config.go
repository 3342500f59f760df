// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-teacher-desk client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the provisioned client
	// credentials and the application version.
	App App `envPrefix:"APP_"`

	// Sync holds the background synchronisation settings (interval, batch
	// size, timeouts). All fields have safe defaults; an empty Sync section
	// must never prevent the client from starting.
	Sync Sync `envPrefix:"SYNC_"`

	// Adapter holds the remote endpoints the client talks to: the SIS
	// admin server and the messaging server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds configuration for the local persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// ClientID is the workstation identity the SIS issued for this
	// teacher's client install.
	// Env: APP_CLIENT_ID
	ClientID string `env:"CLIENT_ID"`

	// ClientSecret is the secret paired with ClientID. Used for login and
	// for the re-authentication fallback after a failed token refresh.
	// Must be kept confidential.
	// Env: APP_CLIENT_SECRET
	ClientSecret string `env:"CLIENT_SECRET"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Sync holds background synchronisation settings.
type Sync struct {
	// Enabled toggles the background push loop. Nil means "not set" and
	// defaults to true; the pointer keeps the merge step from mistaking
	// the zero value for an explicit "false".
	// Env: SYNC_ENABLED
	Enabled *bool `env:"ENABLED"`

	// Interval is the fixed delay between scheduler ticks (e.g. "15s").
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// BatchSize caps how many records one batch push carries.
	// Env: SYNC_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`

	// MaxRetryAttempts bounds consecutive failed ticks before the
	// scheduler logs at error level instead of warn. The scheduler itself
	// never stops on failure.
	// Env: SYNC_MAX_RETRY_ATTEMPTS
	MaxRetryAttempts int `env:"MAX_RETRY_ATTEMPTS"`

	// RequestTimeout is the per-call timeout for ordinary remote calls.
	// Env: SYNC_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// BatchTimeout is the per-call timeout for batch pushes, which carry
	// more payload than single-entity calls.
	// Env: SYNC_BATCH_TIMEOUT
	BatchTimeout time.Duration `env:"BATCH_TIMEOUT"`

	// HealthTimeout is the timeout for one health probe.
	// Env: SYNC_HEALTH_TIMEOUT
	HealthTimeout time.Duration `env:"HEALTH_TIMEOUT"`
}

// Adapter holds the remote endpoints consumed by the client.
type Adapter struct {
	// AdminBaseURL is the base URL of the SIS admin server
	// (e.g. "https://sis.district.example").
	// Env: ADAPTER_ADMIN_BASE_URL
	AdminBaseURL string `env:"ADMIN_BASE_URL"`

	// MessagingURL is the WebSocket URL of the messaging server
	// (e.g. "wss://chat.district.example/ws").
	// Env: ADAPTER_MESSAGING_URL
	MessagingURL string `env:"MESSAGING_URL"`
}

// Storage groups the configuration for the local persistence backend.
type Storage struct {
	// DB holds the local database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path backing the offline store
	// (e.g. "teacher-desk.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
