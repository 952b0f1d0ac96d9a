package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindwell-ai/mindwell/ai/metrics"
	"github.com/mindwell-ai/mindwell/internal/profile"
)

type fakeChat struct {
	reply     string
	sessionID string
	err       error

	gotUserID    string
	gotSessionID string
	gotMessage   string
}

func (f *fakeChat) HandleTurn(_ context.Context, userID, sessionID, message string) (string, string, error) {
	f.gotUserID = userID
	f.gotSessionID = sessionID
	f.gotMessage = message
	return f.reply, f.sessionID, f.err
}

func newTestServer(chat ChatService) *Server {
	p := &profile.Profile{Mode: "dev", Addr: "127.0.0.1", Port: 0, Version: "test"}
	return NewServer(p, chat, metrics.NewPrometheusExporter(metrics.Config{}))
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echoContentType, "application/json")
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

const echoContentType = "Content-Type"

func TestChatEndpoint(t *testing.T) {
	chat := &fakeChat{reply: "Hi Alice!", sessionID: "sess-1"}
	s := newTestServer(chat)

	rec := doRequest(s, http.MethodPost, "/api/v1/chat", `{"user_id":"alice","message":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Reply     string `json:"reply"`
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Hi Alice!", resp.Reply)
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.Equal(t, "alice", chat.gotUserID)
	assert.Equal(t, "hello", chat.gotMessage)
}

func TestChatEndpoint_PassesSessionID(t *testing.T) {
	chat := &fakeChat{reply: "ok", sessionID: "sess-1"}
	s := newTestServer(chat)

	rec := doRequest(s, http.MethodPost, "/api/v1/chat", `{"user_id":"alice","session_id":"sess-1","message":"again"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sess-1", chat.gotSessionID)
}

func TestChatEndpoint_Validation(t *testing.T) {
	s := newTestServer(&fakeChat{})

	rec := doRequest(s, http.MethodPost, "/api/v1/chat", `{"message":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "user_id is required")

	rec = doRequest(s, http.MethodPost, "/api/v1/chat", `{"user_id":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "message is required")
}

func TestChatEndpoint_ServiceError(t *testing.T) {
	chat := &fakeChat{err: errors.New("llm down")}
	s := newTestServer(chat)

	rec := doRequest(s, http.MethodPost, "/api/v1/chat", `{"user_id":"alice","message":"hello"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	// Internal detail must not leak.
	assert.NotContains(t, rec.Body.String(), "llm down")
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(&fakeChat{})

	rec := doRequest(s, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"version":"test"`)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(&fakeChat{})

	rec := doRequest(s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
