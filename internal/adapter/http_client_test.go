// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-teacher-desk/internal/config"
	"github.com/MKhiriev/go-teacher-desk/internal/logger"
	"github.com/MKhiriev/go-teacher-desk/models"
)

func testAccessToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newTestClient(t *testing.T, serverURL string) *sisHTTPClient {
	t.Helper()
	creds := CredentialProviderFunc(func(ctx context.Context) (models.Credentials, error) {
		return models.Credentials{ClientID: "room-104", Secret: "s3cret"}, nil
	})
	c, err := NewSISClient(config.ClientAdapter{AdminBaseURL: serverURL}, creds, logger.Nop())
	require.NoError(t, err)
	return c.(*sisHTTPClient)
}

// writeTokens answers a login or refresh request with a fresh token pair.
func writeTokens(t *testing.T, w http.ResponseWriter, access string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(models.TokenPair{
		AccessToken:  access,
		RefreshToken: "refresh-" + access[:8],
	})
	require.NoError(t, err)
}

// ── base URL normalisation ──────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "full url", in: "https://sis.district.edu", want: "https://sis.district.edu"},
		{name: "trailing slash trimmed", in: "http://localhost:8080/", want: "http://localhost:8080"},
		{name: "bare host gets scheme", in: "localhost:8080", want: "http://localhost:8080"},
		{name: "empty", in: "", wantErr: true},
		{name: "whitespace only", in: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Login ───────────────────────────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	access := testAccessToken(t, "teacher-42")

	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		var body models.LoginRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, "room-104", body.ClientID)
		assert.Equal(t, "s3cret", body.Secret)
		writeTokens(t, w, access)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	session, err := c.Login(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "teacher-42", session.Teacher.TeacherID)
	assert.True(t, session.Valid())
	assert.Equal(t, session, c.Session())
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.Session().Tokens.AccessToken)
}

// ── 401 recovery ────────────────────────────────────────────────────────────

// An expired access token must be recovered transparently: the client
// refreshes, replays the original request once, and the caller never sees
// the intermediate 401.
func TestDoAuthed_RefreshThenRetrySucceeds(t *testing.T) {
	oldAccess := testAccessToken(t, "teacher-42")
	newAccess := testAccessToken(t, "teacher-42")
	var studentCalls atomic.Int32

	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeTokens(t, w, oldAccess)
	})
	r.Post("/api/auth/refresh", func(w http.ResponseWriter, req *http.Request) {
		var body models.RefreshRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.NotEmpty(t, body.RefreshToken)
		writeTokens(t, w, newAccess)
	})
	r.Get("/api/teacher/students", func(w http.ResponseWriter, req *http.Request) {
		if studentCalls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "Bearer "+newAccess, req.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.StudentRecord{{SISID: "st-1", FirstName: "Dana"}})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background())
	require.NoError(t, err)

	students, err := c.GetStudents(context.Background())

	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "st-1", students[0].SISID)
	assert.Equal(t, int32(2), studentCalls.Load())
}

// When the refresh endpoint rejects the token the client falls back to a full
// re-login with the provisioned credentials before replaying.
func TestDoAuthed_ReloginFallback(t *testing.T) {
	access := testAccessToken(t, "teacher-42")
	var loginCalls, studentCalls atomic.Int32

	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		loginCalls.Add(1)
		writeTokens(t, w, access)
	})
	r.Post("/api/auth/refresh", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	r.Get("/api/teacher/students", func(w http.ResponseWriter, req *http.Request) {
		if studentCalls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.StudentRecord{})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background())
	require.NoError(t, err)

	_, err = c.GetStudents(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int32(2), loginCalls.Load(), "initial login plus the fallback re-login")
}

// A 401 that survives recovery is surfaced, never retried a second time.
func TestDoAuthed_SingleRetryOnly(t *testing.T) {
	access := testAccessToken(t, "teacher-42")
	var studentCalls atomic.Int32

	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeTokens(t, w, access)
	})
	r.Post("/api/auth/refresh", func(w http.ResponseWriter, req *http.Request) {
		writeTokens(t, w, access)
	})
	r.Get("/api/teacher/students", func(w http.ResponseWriter, req *http.Request) {
		studentCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background())
	require.NoError(t, err)

	_, err = c.GetStudents(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(2), studentCalls.Load(), "original call plus exactly one replay")
}

// ── error mapping ───────────────────────────────────────────────────────────

func TestPushGrade_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("unknown assignment"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	// unauthenticated push: the fake server answers 400 before checking auth
	_, err := c.PushGrade(context.Background(), models.GradeRecord{LocalID: "g-1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "unknown assignment")
}

func TestPushHallPass_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.PushHallPass(context.Background(), models.HallPassRecord{LocalID: "hp-1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGetStudents_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetStudents(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

// After enough consecutive failures the breaker opens and requests fail fast
// without reaching the server.
func TestCircuitBreaker_Opens(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	for i := 0; i < 5; i++ {
		_, err := c.GetStudents(context.Background())
		require.ErrorIs(t, err, ErrUnavailable)
	}
	before := hits.Load()

	_, err := c.GetStudents(context.Background())

	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, before, hits.Load(), "open breaker must not reach the server")
}

// ── batches ─────────────────────────────────────────────────────────────────

func TestSubmitGradeBatch_SetsLengthAndParsesAcceptance(t *testing.T) {
	access := testAccessToken(t, "teacher-42")

	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeTokens(t, w, access)
	})
	r.Post("/api/teacher/grades/batch", func(w http.ResponseWriter, req *http.Request) {
		var body models.GradeBatchRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		assert.Equal(t, 2, body.Length)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.BatchResponse{
			AcceptedIDs: []string{"g-1"},
			Assigned:    []models.IDPair{{LocalID: "g-1", SISID: "sis-900"}},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background())
	require.NoError(t, err)

	resp, err := c.SubmitGradeBatch(context.Background(), models.GradeBatchRequest{
		Grades: []models.GradeRecord{{LocalID: "g-1"}, {LocalID: "g-2"}},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"g-1"}, resp.AcceptedIDs)
	require.Len(t, resp.Assigned, 1)
	assert.Equal(t, "sis-900", resp.Assigned[0].SISID)
}

func TestSubmitGradeBatch_OutlivesDefaultRequestTimeout(t *testing.T) {
	access := testAccessToken(t, "teacher-42")

	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeTokens(t, w, access)
	})
	r.Post("/api/teacher/grades/batch", func(w http.ResponseWriter, req *http.Request) {
		// slower than the default request budget, within the batch one
		time.Sleep(300 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.BatchResponse{})
	})
	r.Get("/api/teacher/students", func(w http.ResponseWriter, req *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	creds := CredentialProviderFunc(func(ctx context.Context) (models.Credentials, error) {
		return models.Credentials{ClientID: "room-104", Secret: "s3cret"}, nil
	})
	client, err := NewSISClient(config.ClientAdapter{
		AdminBaseURL:   srv.URL,
		RequestTimeout: 100 * time.Millisecond,
		BatchTimeout:   2 * time.Second,
	}, creds, logger.Nop())
	require.NoError(t, err)
	c := client.(*sisHTTPClient)

	_, err = c.Login(context.Background())
	require.NoError(t, err)

	_, err = c.SubmitGradeBatch(context.Background(), models.GradeBatchRequest{
		Grades: []models.GradeRecord{{LocalID: "g-1"}},
	})
	require.NoError(t, err, "the batch budget must apply, not the default request budget")

	// the same slow server kills an ordinary call at the default budget
	_, err = c.GetStudents(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestMarkSyncComplete(t *testing.T) {
	access := testAccessToken(t, "teacher-42")
	var got models.SyncCompleteRequest

	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeTokens(t, w, access)
	})
	r.Post("/api/teacher/sync/complete", func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Login(context.Background())
	require.NoError(t, err)

	err = c.MarkSyncComplete(context.Background(), models.SyncCompleteRequest{
		EntityType: models.EntityGrade,
		IDs:        []string{"g-1", "g-2"},
	})

	require.NoError(t, err)
	assert.Equal(t, models.EntityGrade, got.EntityType)
	assert.Equal(t, []string{"g-1", "g-2"}, got.IDs)
}
