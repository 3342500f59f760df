package config

import (
	"fmt"
	"time"
)

// ClientApp holds application-level client settings derived from the shared
// structured config.
type ClientApp struct {
	// ClientID is the provisioned workstation identity.
	ClientID string
	// ClientSecret is the secret paired with ClientID.
	ClientSecret string
	// Version is the running application version.
	Version string
}

// ClientSync holds background synchronisation settings for the client.
type ClientSync struct {
	// Enabled toggles the background push loop.
	Enabled bool
	// Interval defines how often the scheduler ticks.
	Interval time.Duration
	// BatchSize caps records per batch push.
	BatchSize int
	// MaxRetryAttempts bounds consecutive failed ticks before escalating
	// the log level.
	MaxRetryAttempts int
	// RequestTimeout is the per-call timeout for ordinary remote calls.
	RequestTimeout time.Duration
	// BatchTimeout is the per-call timeout for batch pushes.
	BatchTimeout time.Duration
	// HealthTimeout is the timeout for one health probe.
	HealthTimeout time.Duration
}

// ClientAdapter holds the remote endpoints used by the client transport layer.
type ClientAdapter struct {
	// AdminBaseURL is the SIS admin server base URL.
	AdminBaseURL string
	// MessagingURL is the messaging server WebSocket URL.
	MessagingURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// BatchTimeout is the timeout for batch pushes.
	BatchTimeout time.Duration
	// HealthTimeout is the timeout for health probes.
	HealthTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Sync contains background synchronisation settings.
	Sync ClientSync
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			ClientID:     cfg.App.ClientID,
			ClientSecret: cfg.App.ClientSecret,
			Version:      cfg.App.Version,
		},
		Sync: ClientSync{
			Enabled:          cfg.Sync.Enabled == nil || *cfg.Sync.Enabled,
			Interval:         cfg.Sync.Interval,
			BatchSize:        cfg.Sync.BatchSize,
			MaxRetryAttempts: cfg.Sync.MaxRetryAttempts,
			RequestTimeout:   cfg.Sync.RequestTimeout,
			BatchTimeout:     cfg.Sync.BatchTimeout,
			HealthTimeout:    cfg.Sync.HealthTimeout,
		},
		Adapter: ClientAdapter{
			AdminBaseURL:   cfg.Adapter.AdminBaseURL,
			MessagingURL:   cfg.Adapter.MessagingURL,
			RequestTimeout: cfg.Sync.RequestTimeout,
			BatchTimeout:   cfg.Sync.BatchTimeout,
			HealthTimeout:  cfg.Sync.HealthTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
	}

	return clientCfg, clientCfg.validate()
}
