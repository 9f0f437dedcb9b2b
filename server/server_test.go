package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"website_content_orchestrator/generator"
)

func testServer(t *testing.T, mock *generator.MockLLM) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := generator.NewConversationStore(0)
	agent, err := generator.NewAgent(mock, store, nil, logger, generator.Options{})
	require.NoError(t, err)
	srv, err := New(agent, logger, time.Minute)
	require.NoError(t, err)
	return srv
}

func TestHandleGenerate(t *testing.T) {
	srv := testServer(t, &generator.MockLLM{Responses: []generator.MockResponse{
		{Body: `{"elements":[{"id":"e1","type":"text","content":"Hello","styles":{},"position":{"x":0,"y":0},"size":{"width":800,"height":100}}],"suggestions":["next"],"reasoning":"ok"}`},
	}})

	body := `{"instruction":"Add a welcome blurb","userId":"u1","mode":"generate","currentElements":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result generator.GenerationResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.StepsCompleted)
	assert.Equal(t, 1, result.TotalSteps)
	require.Len(t, result.Elements, 1)
	assert.Equal(t, "Hello", result.Elements[0].Content)
	require.NotNil(t, result.Context)
}

func TestHandleGenerate_BackendFaultIsStillOK(t *testing.T) {
	srv := testServer(t, &generator.MockLLM{Responses: []generator.MockResponse{
		{Err: &generator.BackendError{Kind: generator.ErrKindNetwork, Err: io.ErrUnexpectedEOF}},
	}})

	body := `{"instruction":"Add a button","userId":"u1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	// A backend fault is a well-formed unsuccessful result, not an HTTP error.
	require.Equal(t, http.StatusOK, rec.Code)
	var result generator.GenerationResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestHandleGenerate_InvalidRequests(t *testing.T) {
	srv := testServer(t, &generator.MockLLM{})

	// Missing instruction.
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"userId":"u1"}`))
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Malformed body.
	req = httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{not json`))
	rec = httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Wrong method.
	req = httptest.NewRequest(http.MethodGet, "/api/generate", nil)
	rec = httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(t, &generator.MockLLM{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
