// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"

	"github.com/MKhiriev/go-teacher-desk/internal/config"
	"github.com/MKhiriev/go-teacher-desk/internal/logger"
	"github.com/MKhiriev/go-teacher-desk/models"
)

type sisHTTPClient struct {
	client         *resty.Client
	creds          CredentialProvider
	requestTimeout time.Duration
	batchTimeout   time.Duration
	breaker        *gobreaker.CircuitBreaker[*resty.Response]

	mu      sync.RWMutex
	session models.Session

	logger *logger.Logger
}

// NewSISClient constructs the HTTP/REST implementation of [SISClient].
// It normalises and validates the base URL from adapterCfg.AdminBaseURL,
// configures the underlying resty client with the default request timeout,
// and installs a circuit breaker so a flapping server is probed instead of
// hammered.
//
// Returns an error if adapterCfg.AdminBaseURL is empty or cannot be parsed
// as a valid URL.
func NewSISClient(adapterCfg config.ClientAdapter, creds CredentialProvider, log *logger.Logger) (SISClient, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.AdminBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid admin base URL: %w", err)
	}

	timeout := adapterCfg.RequestTimeout
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}
	batchTimeout := adapterCfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = config.DefaultBatchTimeout
	}

	// no client-level SetTimeout: that sets http.Client.Timeout, which
	// caps every request and would cut batch calls off at the default.
	// Budgets are applied per call through callContext instead.
	client := resty.New().
		SetBaseURL(baseURL)

	breaker := gobreaker.NewCircuitBreaker[*resty.Response](gobreaker.Settings{
		Name:    "sis-admin",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return &sisHTTPClient{
		client:         client,
		creds:          creds,
		requestTimeout: timeout,
		batchTimeout:   batchTimeout,
		breaker:        breaker,
		logger:         log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// callContext bounds one exchange. A zero timeout means the default request
// budget; batch submissions pass their longer one.
func (h *sisHTTPClient) callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = h.requestTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// Session implements [SISClient].
func (h *sisHTTPClient) Session() models.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.session
}

func (h *sisHTTPClient) setSession(s models.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.session = s
}

// Login implements [SISClient]. It POSTs the provisioned credentials to
// POST /api/auth/login and, on 200, parses the access/refresh token pair and
// stores the resulting session. Any other status or a transport failure
// returns an error and leaves the current session untouched.
func (h *sisHTTPClient) Login(ctx context.Context) (models.Session, error) {
	creds, err := h.creds.Credentials(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("obtain credentials: %w", err)
	}

	callCtx, cancel := h.callContext(ctx, 0)
	defer cancel()

	resp, err := h.exec(h.client.R().
		SetContext(callCtx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{ClientID: creds.ClientID, Secret: creds.Secret}),
		resty.MethodPost, "/api/auth/login")
	if err != nil {
		return models.Session{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	var pair models.TokenPair
	if err = json.Unmarshal(resp.Body(), &pair); err != nil {
		return models.Session{}, fmt.Errorf("decode login response: %w", err)
	}

	session, err := models.SessionFromTokens(pair)
	if err != nil {
		return models.Session{}, fmt.Errorf("login session: %w", err)
	}

	h.setSession(session)
	h.logger.Info().Str("teacher_id", session.Teacher.TeacherID).Msg("authenticated with SIS")
	return session, nil
}

// refreshSession attempts the silent refresh, then falls back to a full
// re-login with the stored credential provider. Returns an error only when
// both recovery paths fail.
func (h *sisHTTPClient) refreshSession(ctx context.Context) error {
	current := h.Session()
	if current.Tokens.RefreshToken != "" {
		callCtx, cancel := h.callContext(ctx, 0)
		defer cancel()
		resp, err := h.exec(h.client.R().
			SetContext(callCtx).
			SetHeader("Content-Type", "application/json").
			SetBody(models.RefreshRequest{RefreshToken: current.Tokens.RefreshToken}),
			resty.MethodPost, "/api/auth/refresh")
		if err == nil && mapHTTPError(resp) == nil {
			var pair models.TokenPair
			if decodeErr := json.Unmarshal(resp.Body(), &pair); decodeErr == nil {
				if session, sessErr := models.SessionFromTokens(pair); sessErr == nil {
					h.setSession(session)
					h.logger.Debug().Msg("access token refreshed")
					return nil
				}
			}
		}
		h.logger.Debug().Msg("token refresh failed, falling back to re-login")
	}

	if _, err := h.Login(ctx); err != nil {
		return fmt.Errorf("re-login after failed refresh: %w", err)
	}
	return nil
}

// exec sends one request through the circuit breaker. Transport failures and
// 5xx responses count against the breaker and come back wrapped in
// [ErrUnavailable]; everything else passes through for status mapping by the
// caller.
func (h *sisHTTPClient) exec(req *resty.Request, method, path string) (*resty.Response, error) {
	resp, err := h.breaker.Execute(func() (*resty.Response, error) {
		resp, execErr := req.Execute(method, path)
		if execErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, execErr)
		}
		if resp.StatusCode() >= http.StatusInternalServerError {
			return resp, fmt.Errorf("%w: http %d", ErrUnavailable, resp.StatusCode())
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit breaker open", ErrUnavailable)
		}
		return resp, err
	}
	return resp, nil
}

// doAuthed performs one authenticated exchange with the single-retry 401
// recovery: refresh, then re-login, then exactly one replay of the original
// request. The caller never observes the intermediate 401 when recovery
// succeeds.
func (h *sisHTTPClient) doAuthed(ctx context.Context, build func() *resty.Request, method, path string) (*resty.Response, error) {
	send := func() (*resty.Response, error) {
		req := build().SetContext(ctx)
		if token := h.Session().Tokens.AccessToken; token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
		return h.exec(req, method, path)
	}

	resp, err := send()
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusUnauthorized {
		return resp, nil
	}

	if refreshErr := h.refreshSession(ctx); refreshErr != nil {
		h.logger.Warn().Err(refreshErr).Msg("authentication recovery failed")
		return nil, fmt.Errorf("%w: refresh and re-login failed", ErrUnauthorized)
	}

	// one replay with the fresh token; a second 401 surfaces to the caller
	return send()
}

// getJSON fetches path and decodes the response body into T.
func getJSON[T any](ctx context.Context, h *sisHTTPClient, path string) (T, error) {
	var out T

	callCtx, cancel := h.callContext(ctx, 0)
	defer cancel()

	resp, err := h.doAuthed(callCtx, func() *resty.Request {
		return h.client.R()
	}, resty.MethodGet, path)
	if err != nil {
		return out, fmt.Errorf("get %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return out, err
	}

	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return out, fmt.Errorf("decode %s response: %w", path, err)
	}
	return out, nil
}

// postJSON sends body to path and decodes the response into T. A non-zero
// timeout overrides the client default for this call only (batch pushes are
// allowed more time than single-entity calls).
func postJSON[T any](ctx context.Context, h *sisHTTPClient, path string, body any, timeout time.Duration) (T, error) {
	var out T

	callCtx, cancel := h.callContext(ctx, timeout)
	defer cancel()

	resp, err := h.doAuthed(callCtx, func() *resty.Request {
		return h.client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(body)
	}, resty.MethodPost, path)
	if err != nil {
		return out, fmt.Errorf("post %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return out, err
	}

	if len(resp.Body()) > 0 {
		if err = json.Unmarshal(resp.Body(), &out); err != nil {
			return out, fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return out, nil
}

// ── typed operations ─────────────────────────────────────────────────────────

func (h *sisHTTPClient) GetStudents(ctx context.Context) ([]models.StudentRecord, error) {
	return getJSON[[]models.StudentRecord](ctx, h, "/api/teacher/students")
}

func (h *sisHTTPClient) GetAssignmentCategories(ctx context.Context) ([]models.AssignmentCategoryRecord, error) {
	return getJSON[[]models.AssignmentCategoryRecord](ctx, h, "/api/teacher/categories")
}

func (h *sisHTTPClient) GetAssignments(ctx context.Context) ([]models.AssignmentRecord, error) {
	return getJSON[[]models.AssignmentRecord](ctx, h, "/api/teacher/assignments")
}

func (h *sisHTTPClient) PushStudent(ctx context.Context, r models.StudentRecord) (models.PushAck, error) {
	return postJSON[models.PushAck](ctx, h, "/api/teacher/students", r, 0)
}

func (h *sisHTTPClient) PushAssignmentCategory(ctx context.Context, r models.AssignmentCategoryRecord) (models.PushAck, error) {
	return postJSON[models.PushAck](ctx, h, "/api/teacher/categories", r, 0)
}

func (h *sisHTTPClient) PushAssignment(ctx context.Context, r models.AssignmentRecord) (models.PushAck, error) {
	return postJSON[models.PushAck](ctx, h, "/api/teacher/assignments", r, 0)
}

func (h *sisHTTPClient) PushGrade(ctx context.Context, r models.GradeRecord) (models.PushAck, error) {
	return postJSON[models.PushAck](ctx, h, "/api/teacher/grades", r, 0)
}

func (h *sisHTTPClient) PushAttendance(ctx context.Context, r models.AttendanceRecord) (models.PushAck, error) {
	return postJSON[models.PushAck](ctx, h, "/api/teacher/attendance", r, 0)
}

func (h *sisHTTPClient) PushHallPass(ctx context.Context, r models.HallPassRecord) (models.PushAck, error) {
	return postJSON[models.PushAck](ctx, h, "/api/teacher/hallpasses", r, 0)
}

func (h *sisHTTPClient) PushClub(ctx context.Context, r models.ClubRecord) (models.PushAck, error) {
	return postJSON[models.PushAck](ctx, h, "/api/teacher/clubs", r, 0)
}

func (h *sisHTTPClient) SubmitGradeBatch(ctx context.Context, req models.GradeBatchRequest) (models.BatchResponse, error) {
	req.Length = len(req.Grades)
	return postJSON[models.BatchResponse](ctx, h, "/api/teacher/grades/batch", req, h.batchTimeout)
}

func (h *sisHTTPClient) SubmitAttendanceBatch(ctx context.Context, req models.AttendanceBatchRequest) (models.BatchResponse, error) {
	req.Length = len(req.Records)
	return postJSON[models.BatchResponse](ctx, h, "/api/teacher/attendance/batch", req, h.batchTimeout)
}

func (h *sisHTTPClient) MarkSyncComplete(ctx context.Context, req models.SyncCompleteRequest) error {
	_, err := postJSON[struct{}](ctx, h, "/api/teacher/sync/complete", req, 0)
	return err
}

func (h *sisHTTPClient) GetGradeConflicts(ctx context.Context) ([]models.ConflictReport, error) {
	return getJSON[[]models.ConflictReport](ctx, h, "/api/teacher/grades/conflicts")
}

func (h *sisHTTPClient) GetHallPassSnapshot(ctx context.Context, sisID string) (models.HallPassRecord, error) {
	return getJSON[models.HallPassRecord](ctx, h, "/api/teacher/hallpasses/"+url.PathEscape(sisID))
}

// Close implements [SISClient].
func (h *sisHTTPClient) Close() {
	h.client.GetClient().CloseIdleConnections()
}
