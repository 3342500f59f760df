package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a admin server base URL
//	-m messaging server WebSocket URL
//	-d local database path
//	-c/-config json file path with configs
//	-client-id provisioned client identifier
//	-client-secret provisioned client secret
//	-sync-interval delay between background sync ticks (e.g., "15s")
//	-sync-batch-size max records per batch push
//	-sync-timeout per-call request timeout (e.g., "10s")
//	-sync-batch-timeout per-call batch timeout (e.g., "30s")
func ParseFlags() *StructuredConfig {
	var adminBaseURL string
	var messagingURL string
	var databaseDSN string
	var jsonConfigPath string
	var clientID string
	var clientSecret string
	var syncInterval time.Duration
	var syncBatchSize int
	var syncTimeout time.Duration
	var syncBatchTimeout time.Duration

	flag.StringVar(&adminBaseURL, "a", "", "Admin server base URL")
	flag.StringVar(&messagingURL, "m", "", "Messaging server WebSocket URL")
	flag.StringVar(&databaseDSN, "d", "", "Local database path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&clientID, "client-id", "", "Provisioned client identifier")
	flag.StringVar(&clientSecret, "client-secret", "", "Provisioned client secret")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Sync tick interval (e.g., 15s)")
	flag.IntVar(&syncBatchSize, "sync-batch-size", 0, "Max records per batch push")
	flag.DurationVar(&syncTimeout, "sync-timeout", 0, "Request timeout (e.g., 10s)")
	flag.DurationVar(&syncBatchTimeout, "sync-batch-timeout", 0, "Batch request timeout (e.g., 30s)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			ClientID:     clientID,
			ClientSecret: clientSecret,
		},
		Sync: Sync{
			Interval:       syncInterval,
			BatchSize:      syncBatchSize,
			RequestTimeout: syncTimeout,
			BatchTimeout:   syncBatchTimeout,
		},
		Adapter: Adapter{
			AdminBaseURL: adminBaseURL,
			MessagingURL: messagingURL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		JSONFilePath: jsonConfigPath,
	}
}
