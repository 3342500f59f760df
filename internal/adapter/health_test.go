// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-teacher-desk/internal/config"
	"github.com/MKhiriev/go-teacher-desk/internal/logger"
)

func newTestMonitor(t *testing.T, serverURL string) HealthMonitor {
	t.Helper()
	m, err := NewHealthMonitor(config.ClientAdapter{AdminBaseURL: serverURL}, logger.Nop())
	require.NoError(t, err)
	return m
}

func TestHealthMonitor_ActuatorEndpoint(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/actuator/health", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"status":"UP"}`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	m := newTestMonitor(t, srv.URL)

	assert.True(t, m.IsAvailable(context.Background()))
	assert.True(t, m.Status().Available)
	assert.False(t, m.Status().LastSuccess.IsZero())
}

func TestHealthMonitor_FallsBackThroughProbeList(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/system/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	m := newTestMonitor(t, srv.URL)

	assert.True(t, m.IsAvailable(context.Background()))
}

// A server with no health endpoint at all still counts as up when the base
// URL answers anything below 5xx.
func TestHealthMonitor_BareGetFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	m := newTestMonitor(t, srv.URL)

	assert.True(t, m.IsAvailable(context.Background()))
}

func TestHealthMonitor_ServerErrorIsDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := newTestMonitor(t, srv.URL)

	assert.False(t, m.IsAvailable(context.Background()))
	assert.False(t, m.Status().Available)
	assert.False(t, m.Status().LastFailure.IsZero())
}

func TestHealthMonitor_UnreachableServer(t *testing.T) {
	// closed immediately so the port refuses connections
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	m := newTestMonitor(t, srv.URL)

	assert.False(t, m.IsAvailable(context.Background()))
}

func TestHealthMonitor_RecoversAfterOutage(t *testing.T) {
	healthy := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if healthy && r.URL.Path == "/api/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := newTestMonitor(t, srv.URL)

	assert.False(t, m.IsAvailable(context.Background()))
	healthy = true
	assert.True(t, m.IsAvailable(context.Background()))
	assert.True(t, m.Status().Available)
}
