// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Safe defaults. The client must start with nothing configured but the
// endpoints; see the configuration surface in the sync design notes.
const (
	DefaultSyncInterval     = 15 * time.Second
	DefaultBatchSize        = 100
	DefaultMaxRetryAttempts = 5
	DefaultRequestTimeout   = 10 * time.Second
	DefaultBatchTimeout     = 30 * time.Second
	DefaultHealthTimeout    = 5 * time.Second
	DefaultDatabaseDSN      = "teacher-desk.db"
)

// applyDefaults fills every unset Sync and Storage field with its safe
// default so the absence of configuration never crashes the client.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Sync.Enabled == nil {
		enabled := true
		cfg.Sync.Enabled = &enabled
	}
	if cfg.Sync.Interval <= 0 {
		cfg.Sync.Interval = DefaultSyncInterval
	}
	if cfg.Sync.BatchSize <= 0 {
		cfg.Sync.BatchSize = DefaultBatchSize
	}
	if cfg.Sync.MaxRetryAttempts <= 0 {
		cfg.Sync.MaxRetryAttempts = DefaultMaxRetryAttempts
	}
	if cfg.Sync.RequestTimeout <= 0 {
		cfg.Sync.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Sync.BatchTimeout <= 0 {
		cfg.Sync.BatchTimeout = DefaultBatchTimeout
	}
	if cfg.Sync.HealthTimeout <= 0 {
		cfg.Sync.HealthTimeout = DefaultHealthTimeout
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = DefaultDatabaseDSN
	}
}

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the client cannot start without.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.AdminBaseURL == "" {
		return fmt.Errorf("%w: admin base URL is required", ErrInvalidAdapterConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.AdminBaseURL == "" {
		return fmt.Errorf("%w: admin base URL is required", ErrInvalidAdapterConfigs)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: local database path is required", ErrInvalidStorageConfigs)
	}
	if cfg.Sync.Interval <= 0 {
		return fmt.Errorf("%w: sync interval must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}
