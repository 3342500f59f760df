// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-teacher-desk/internal/adapter"
	"github.com/MKhiriev/go-teacher-desk/internal/chat"
	"github.com/MKhiriev/go-teacher-desk/internal/config"
	"github.com/MKhiriev/go-teacher-desk/internal/logger"
	"github.com/MKhiriev/go-teacher-desk/internal/service"
	"github.com/MKhiriev/go-teacher-desk/internal/store"
	"github.com/MKhiriev/go-teacher-desk/internal/workers"
	"github.com/MKhiriev/go-teacher-desk/models"
)

// App owns the client's long-lived pieces: local storage, the SIS adapter,
// the service layer and the background workers.
type App struct {
	cfg      *config.ClientConfig
	storages *store.ClientStorages
	sis      adapter.SISClient
	services *service.ClientServices
	workers  *workers.Workers

	logger *logger.Logger
}

// NewApp wires the whole client from configuration: SQLite storage with
// migrations applied, the SIS HTTP client, the health monitor, the service
// layer and the background workers (push scheduler and messaging client).
func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	creds := adapter.CredentialProviderFunc(func(context.Context) (models.Credentials, error) {
		return models.Credentials{ClientID: cfg.App.ClientID, Secret: cfg.App.ClientSecret}, nil
	})

	sis, err := adapter.NewSISClient(cfg.Adapter, creds, log)
	if err != nil {
		return nil, fmt.Errorf("create SIS client: %w", err)
	}

	monitor, err := adapter.NewHealthMonitor(cfg.Adapter, log.GetChildLogger())
	if err != nil {
		return nil, fmt.Errorf("create health monitor: %w", err)
	}

	services := service.NewClientServices(cfg.Sync, storages, sis, monitor, log)

	appWorkers := []workers.Worker{
		workers.NewSchedulerWorker(services.SyncScheduler, cfg.Sync.Interval),
	}
	if cfg.Adapter.MessagingURL != "" {
		chatClient := chat.NewClient(cfg.Adapter.MessagingURL, func() string {
			return sis.Session().Tokens.AccessToken
		}, nil, log.GetChildLogger())
		appWorkers = append(appWorkers, workers.NewChatWorker(chatClient, log))
	}

	return &App{
		cfg:      cfg,
		storages: storages,
		sis:      sis,
		services: services,
		workers:  workers.NewWorkers(appWorkers...),
		logger:   log,
	}, nil
}

// Run authenticates with the SIS, performs the initial full sync, starts the
// background workers and blocks until the process receives SIGINT or
// SIGTERM, then shuts everything down in reverse order.
//
// Authentication and full-sync failures are logged, not fatal: the teacher
// keeps working offline and the scheduler catches up when the server comes
// back.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := a.sis.Login(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("SIS login failed, starting offline")
	} else {
		session := a.services.SyncManager.FullSync(ctx)
		if !session.Success {
			a.logger.Warn().Str("reason", session.Message).Msg("initial full sync unsuccessful")
		}
	}

	a.workers.Run(ctx)
	a.logger.Info().Msg("teacher desk client started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info().Msg("shutting down")
	a.Close()
	return nil
}

// Close stops the workers and releases the adapter and storage handles.
// Safe to call once after Run returns.
func (a *App) Close() {
	a.workers.Stop()
	a.sis.Close()
	if err := a.storages.Close(); err != nil {
		a.logger.Error().Err(err).Msg("close local storage")
	}
}
