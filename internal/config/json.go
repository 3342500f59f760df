package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
		Version      string `json:"version"`
	} `json:"app,omitempty"`

	Sync struct {
		Enabled          *bool    `json:"enabled,omitempty"`
		Interval         Duration `json:"interval"`
		BatchSize        int      `json:"batch_size"`
		MaxRetryAttempts int      `json:"max_retry_attempts"`
		RequestTimeout   Duration `json:"request_timeout"`
		BatchTimeout     Duration `json:"batch_timeout"`
		HealthTimeout    Duration `json:"health_timeout"`
	} `json:"sync,omitempty"`

	Adapter struct {
		AdminBaseURL string `json:"admin_base_url"`
		MessagingURL string `json:"messaging_url"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			ClientID:     jsonCfg.App.ClientID,
			ClientSecret: jsonCfg.App.ClientSecret,
			Version:      jsonCfg.App.Version,
		},
		Sync: Sync{
			Enabled:          jsonCfg.Sync.Enabled,
			Interval:         time.Duration(jsonCfg.Sync.Interval),
			BatchSize:        jsonCfg.Sync.BatchSize,
			MaxRetryAttempts: jsonCfg.Sync.MaxRetryAttempts,
			RequestTimeout:   time.Duration(jsonCfg.Sync.RequestTimeout),
			BatchTimeout:     time.Duration(jsonCfg.Sync.BatchTimeout),
			HealthTimeout:    time.Duration(jsonCfg.Sync.HealthTimeout),
		},
		Adapter: Adapter{
			AdminBaseURL: jsonCfg.Adapter.AdminBaseURL,
			MessagingURL: jsonCfg.Adapter.MessagingURL,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
