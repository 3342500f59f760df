// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrNotInConflict is returned by the Force operations when the
	// addressed pass is not parked in CONFLICT.
	ErrNotInConflict = errors.New("hall pass is not in conflict state")

	// ErrNoRemoteSnapshot is returned by ForceSISResolution when the pass
	// has never been pushed, so there is no SIS record to adopt.
	ErrNoRemoteSnapshot = errors.New("hall pass has no SIS id, nothing to adopt")
)

// syncInProgressMessage is the message on the immediate SyncSession returned
// when a full sync is triggered while another is still running.
const syncInProgressMessage = "sync already in progress"
