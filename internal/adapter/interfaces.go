// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the desktop client
// and the remote SIS admin server.
//
// The primary abstraction is [SISClient], which decouples the service layer
// from HTTP details: serialisation, bearer-token management, the
// refresh-then-relogin recovery on 401, and the circuit breaker guarding the
// connection. Error values defined in errors.go are mapped from HTTP status
// codes so that callers can use [errors.Is] for transport-agnostic handling
// (e.g. [ErrUnavailable] for anything worth retrying next cycle).
//
// [HealthMonitor] is the cheap availability probe the scheduler consults
// before starting a tick; it never returns an error, only a boolean.
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-teacher-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// CredentialProvider yields the client credentials on demand. The adapter
// calls it for the initial login and again for the re-login fallback after a
// failed token refresh, so no component retains the secret as a loose field.
type CredentialProvider interface {
	Credentials(ctx context.Context) (models.Credentials, error)
}

// CredentialProviderFunc adapts a function to the CredentialProvider
// interface.
type CredentialProviderFunc func(ctx context.Context) (models.Credentials, error)

func (f CredentialProviderFunc) Credentials(ctx context.Context) (models.Credentials, error) {
	return f(ctx)
}

// SISClient is the typed client for the SIS admin server.
//
// Every authenticated call transparently recovers from a single 401: the
// adapter first attempts a silent token refresh, then falls back to a full
// re-login through the credential provider, and retries the original call
// exactly once. If the retry still fails the call surfaces
// [ErrUnauthorized]; there are no unbounded retry loops at this layer.
type SISClient interface {
	// Login authenticates with the SIS using the credential provider and
	// returns the established session. It is also called internally as the
	// re-authentication fallback.
	Login(ctx context.Context) (models.Session, error)

	// Session returns the current session value; a zero session means the
	// client has never logged in.
	Session() models.Session

	// GetStudents fetches the authoritative roster.
	GetStudents(ctx context.Context) ([]models.StudentRecord, error)

	// GetAssignmentCategories fetches the authoritative category list.
	GetAssignmentCategories(ctx context.Context) ([]models.AssignmentCategoryRecord, error)

	// GetAssignments fetches the authoritative assignment list.
	GetAssignments(ctx context.Context) ([]models.AssignmentRecord, error)

	// Push* submit one pending record each and return the SIS-assigned id.
	// Used by the background scheduler, which isolates failures per item.
	PushStudent(ctx context.Context, r models.StudentRecord) (models.PushAck, error)
	PushAssignmentCategory(ctx context.Context, r models.AssignmentCategoryRecord) (models.PushAck, error)
	PushAssignment(ctx context.Context, r models.AssignmentRecord) (models.PushAck, error)
	PushGrade(ctx context.Context, r models.GradeRecord) (models.PushAck, error)
	PushAttendance(ctx context.Context, r models.AttendanceRecord) (models.PushAck, error)
	PushHallPass(ctx context.Context, r models.HallPassRecord) (models.PushAck, error)
	PushClub(ctx context.Context, r models.ClubRecord) (models.PushAck, error)

	// SubmitGradeBatch pushes all pending grades in one call. The response
	// may carry per-item acknowledgments; an empty AcceptedIDs list means
	// the server applied the batch as a whole.
	SubmitGradeBatch(ctx context.Context, req models.GradeBatchRequest) (models.BatchResponse, error)

	// SubmitAttendanceBatch pushes all pending attendance marks in one call.
	SubmitAttendanceBatch(ctx context.Context, req models.AttendanceBatchRequest) (models.BatchResponse, error)

	// MarkSyncComplete notifies the SIS which client ids the client now
	// considers synced, closing the loop after a batch push.
	MarkSyncComplete(ctx context.Context, req models.SyncCompleteRequest) error

	// GetGradeConflicts fetches the outstanding conflicts the SIS detected
	// on its side.
	GetGradeConflicts(ctx context.Context) ([]models.ConflictReport, error)

	// GetHallPassSnapshot fetches the SIS view of a single hall pass for
	// conflict resolution.
	GetHallPassSnapshot(ctx context.Context, sisID string) (models.HallPassRecord, error)

	// Close releases idle transport connections. The client must not be
	// used after Close.
	Close()
}

// HealthMonitor reports whether the SIS admin server is reachable.
type HealthMonitor interface {
	// IsAvailable probes the server once and reports reachability. It
	// never returns an error: every failure degrades to false. The probe
	// updates last-success/last-failure timestamps and logs only on
	// availability transitions.
	IsAvailable(ctx context.Context) bool

	// Status returns the last-known availability without probing.
	Status() HealthStatus
}

// HealthStatus carries the monitor's last observation.
type HealthStatus struct {
	Available   bool
	LastSuccess time.Time // zero if no probe has ever succeeded
	LastFailure time.Time // zero if no probe has ever failed
}
