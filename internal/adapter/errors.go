package adapter

import "errors"

var (
	// ErrUnauthorized is returned when a call ends in 401 after both the
	// silent token refresh and the credential re-login failed. Callers
	// should prompt for re-authentication instead of retrying.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrConflict is returned on HTTP 409: the SIS detected divergent edit
	// history for the pushed record.
	ErrConflict = errors.New("sync conflict")

	// ErrRejected is returned on a non-401 4xx: the SIS refused this
	// payload and a verbatim retry will refuse it again.
	ErrRejected = errors.New("request rejected")

	// ErrUnavailable covers transport failures, timeouts, 5xx responses
	// and an open circuit breaker. Transient: leave the entity pending and
	// retry next cycle.
	ErrUnavailable = errors.New("server unavailable")
)
