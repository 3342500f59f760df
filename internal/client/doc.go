// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the teacher desk client application runtime.
//
// It wires local storage, the SIS adapter, client services, and the
// background workers into a single process lifecycle.
package client
