// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_CLIENT_ID":     "ws-417",
		"APP_CLIENT_SECRET": "s3cret",
		"APP_VERSION":       "1.2.3",

		"SYNC_ENABLED":            "false",
		"SYNC_INTERVAL":           "20s",
		"SYNC_BATCH_SIZE":         "50",
		"SYNC_MAX_RETRY_ATTEMPTS": "3",
		"SYNC_REQUEST_TIMEOUT":    "10s",
		"SYNC_BATCH_TIMEOUT":      "30s",
		"SYNC_HEALTH_TIMEOUT":     "5s",

		"ADAPTER_ADMIN_BASE_URL": "https://sis.district.example",
		"ADAPTER_MESSAGING_URL":  "wss://chat.district.example/ws",

		// Storage has nested prefixes: STORAGE_ + DB_
		"STORAGE_DB_DATABASE_URI": "/var/lib/teacher-desk/local.db",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "ws-417", cfg.App.ClientID)
	assert.Equal(t, "s3cret", cfg.App.ClientSecret)
	assert.Equal(t, "1.2.3", cfg.App.Version)

	require.NotNil(t, cfg.Sync.Enabled)
	assert.False(t, *cfg.Sync.Enabled)
	assert.Equal(t, 20*time.Second, cfg.Sync.Interval)
	assert.Equal(t, 50, cfg.Sync.BatchSize)
	assert.Equal(t, 3, cfg.Sync.MaxRetryAttempts)
	assert.Equal(t, 10*time.Second, cfg.Sync.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.Sync.BatchTimeout)
	assert.Equal(t, 5*time.Second, cfg.Sync.HealthTimeout)

	assert.Equal(t, "https://sis.district.example", cfg.Adapter.AdminBaseURL)
	assert.Equal(t, "wss://chat.district.example/ws", cfg.Adapter.MessagingURL)

	assert.Equal(t, "/var/lib/teacher-desk/local.db", cfg.Storage.DB.DSN)
}

func TestParseEnv_PartialFields(t *testing.T) {
	// Arrange: only the endpoints are set, everything else stays zero.
	setEnvVars(t, map[string]string{
		"ADAPTER_ADMIN_BASE_URL": "http://localhost:8080",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.AdminBaseURL)
	assert.Nil(t, cfg.Sync.Enabled)
	assert.Zero(t, cfg.Sync.Interval)
	assert.Empty(t, cfg.Storage.DB.DSN)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"SYNC_INTERVAL": "not-a-duration",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.Error(t, err)
}

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &StructuredConfig{}

	cfg.applyDefaults()

	require.NotNil(t, cfg.Sync.Enabled)
	assert.True(t, *cfg.Sync.Enabled, "sync must default to enabled")
	assert.Equal(t, DefaultSyncInterval, cfg.Sync.Interval)
	assert.Equal(t, DefaultBatchSize, cfg.Sync.BatchSize)
	assert.Equal(t, DefaultMaxRetryAttempts, cfg.Sync.MaxRetryAttempts)
	assert.Equal(t, DefaultRequestTimeout, cfg.Sync.RequestTimeout)
	assert.Equal(t, DefaultBatchTimeout, cfg.Sync.BatchTimeout)
	assert.Equal(t, DefaultHealthTimeout, cfg.Sync.HealthTimeout)
	assert.Equal(t, DefaultDatabaseDSN, cfg.Storage.DB.DSN)
}

func TestApplyDefaults_ExplicitDisableSurvives(t *testing.T) {
	disabled := false
	cfg := &StructuredConfig{Sync: Sync{Enabled: &disabled}}

	cfg.applyDefaults()

	require.NotNil(t, cfg.Sync.Enabled)
	assert.False(t, *cfg.Sync.Enabled, "explicit disable must not be overwritten by the default")
}

func TestValidate_MissingAdminURL(t *testing.T) {
	cfg := &StructuredConfig{}
	cfg.applyDefaults()

	err := cfg.validate()

	require.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}
