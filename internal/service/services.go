// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-teacher-desk/internal/adapter"
	"github.com/MKhiriev/go-teacher-desk/internal/config"
	"github.com/MKhiriev/go-teacher-desk/internal/logger"
	"github.com/MKhiriev/go-teacher-desk/internal/store"
)

// ClientServices bundles the client-side services behind one wiring point.
type ClientServices struct {
	ConflictResolver ConflictResolver
	SyncManager      SyncManager
	SyncScheduler    SyncScheduler
}

// NewClientServices wires the service layer over the local storages and the
// SIS adapter.
func NewClientServices(cfg config.ClientSync, storages *store.ClientStorages, sis adapter.SISClient, monitor adapter.HealthMonitor, log *logger.Logger) *ClientServices {
	resolver := NewConflictResolver(storages.HallPasses, sis, log)

	return &ClientServices{
		ConflictResolver: resolver,
		SyncManager:      NewSyncManager(cfg, storages, sis, monitor, log),
		SyncScheduler:    NewSyncScheduler(cfg, storages, sis, monitor, resolver, log),
	}
}
