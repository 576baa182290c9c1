package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/blogem/campus-feedback/models"
	"github.com/blogem/campus-feedback/userctx"
)

// fakeRecorder collects audit entries
type fakeRecorder struct {
	mu      sync.Mutex
	entries []*models.AuditLogEntry
	err     error
}

func (f *fakeRecorder) RecordAudit(_ context.Context, entry *models.AuditLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return f.err
}

func (f *fakeRecorder) recorded() []*models.AuditLogEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.AuditLogEntry(nil), f.entries...)
}

func TestAuditLogger_RecordsMarkedRequests(t *testing.T) {
	recorder := &fakeRecorder{}
	handler := AuditLogger(recorder, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userctx.RecordAuditAction(r.Context(), models.AuditActionExport, "")
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/export.csv", nil)
	req = req.WithContext(userctx.SetActor(req.Context(), userctx.AdminActor))
	req.Header.Set("User-Agent", "test-agent")
	req.RemoteAddr = "203.0.113.7:41000"
	req.Header.Set("X-Forwarded-For", "198.51.100.9")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.Eventually(t, func() bool { return len(recorder.recorded()) == 1 }, time.Second, 5*time.Millisecond)

	entry := recorder.recorded()[0]
	assert.Equal(t, userctx.AdminActor, entry.Actor)
	assert.Equal(t, models.AuditActionExport, entry.Action)
	assert.Equal(t, http.MethodGet, entry.Method)
	assert.Equal(t, "/admin/export.csv", entry.Path)
	assert.Equal(t, "test-agent", entry.UserAgent)
	assert.Equal(t, "203.0.113.7", entry.IPAddress)
	assert.False(t, entry.Timestamp.IsZero())
}

func TestAuditLogger_SkipsUnmarkedRequests(t *testing.T) {
	recorder := &fakeRecorder{}
	handler := AuditLogger(recorder, zap.NewNop())(okHandler())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/admin/login", nil))

	assert.Never(t, func() bool { return len(recorder.recorded()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestAuditLogger_LogsWriteFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	recorder := &fakeRecorder{err: errors.New("database is locked")}
	handler := AuditLogger(recorder, zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userctx.RecordAuditAction(r.Context(), models.AuditActionLoginFailed, userctx.AnonymousActor)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/admin/login", nil))

	require.Eventually(t, func() bool { return logs.Len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Failed to create audit log", logs.All()[0].Message)
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr with port", "192.0.2.1:1234", nil, "192.0.2.1"},
		{"ipv6 remote addr", "[2001:db8::1]:443", nil, "2001:db8::1"},
		{"remote addr without port", "192.0.2.1", nil, "192.0.2.1"},
		{"forwarded for ignored", "10.0.0.1:80", map[string]string{"X-Forwarded-For": "198.51.100.2, 10.0.0.1"}, "10.0.0.1"},
		{"real ip ignored", "10.0.0.1:80", map[string]string{"X-Real-IP": "198.51.100.3"}, "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}
