// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-teacher-desk/internal/config"
	"github.com/MKhiriev/go-teacher-desk/internal/logger"
)

// healthProbePaths are tried in order; the first 200 wins. Different SIS
// deployments expose different health endpoints, so the monitor walks the
// known ones before falling back to a bare GET on the base URL.
var healthProbePaths = []string{
	"/actuator/health",
	"/api/health",
	"/api/system/health",
}

type healthMonitor struct {
	client  *resty.Client
	timeout time.Duration

	mu          sync.RWMutex
	available   bool
	everProbed  bool
	lastSuccess time.Time
	lastFailure time.Time

	logger *logger.Logger
}

// NewHealthMonitor builds a [HealthMonitor] that probes the SIS admin server
// before sync attempts. Probing never returns an error: an unreachable or
// misbehaving server is simply reported as unavailable.
func NewHealthMonitor(adapterCfg config.ClientAdapter, log *logger.Logger) (HealthMonitor, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.AdminBaseURL)
	if err != nil {
		return nil, err
	}

	timeout := adapterCfg.HealthTimeout
	if timeout <= 0 {
		timeout = config.DefaultHealthTimeout
	}

	return &healthMonitor{
		client:  resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		timeout: timeout,
		logger:  log,
	}, nil
}

// IsAvailable implements [HealthMonitor]. It walks the known health endpoints
// and accepts the first 200; if none answers, any non-5xx response to a bare
// GET on the base URL still counts as up (the server is alive even if it
// exposes no health endpoint).
func (m *healthMonitor) IsAvailable(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	for _, path := range healthProbePaths {
		resp, err := m.client.R().SetContext(probeCtx).Get(path)
		if err == nil && resp.StatusCode() == http.StatusOK {
			m.record(true)
			return true
		}
	}

	resp, err := m.client.R().SetContext(probeCtx).Get("/")
	up := err == nil && resp.StatusCode() < http.StatusInternalServerError
	m.record(up)
	return up
}

// Status implements [HealthMonitor].
func (m *healthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return HealthStatus{
		Available:   m.available,
		LastSuccess: m.lastSuccess,
		LastFailure: m.lastFailure,
	}
}

// record updates the probe bookkeeping and logs only on state transitions so
// a long outage produces one line, not one per tick.
func (m *healthMonitor) record(up bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if up {
		m.lastSuccess = now
	} else {
		m.lastFailure = now
	}

	if m.everProbed && up == m.available {
		return
	}
	m.everProbed = true
	m.available = up

	if up {
		m.logger.Info().Msg("SIS admin server is reachable")
	} else {
		m.logger.Warn().Msg("SIS admin server is unreachable, sync paused")
	}
}
