package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestCohereClient_Send(t *testing.T) {
	var gotRequest cohereChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chat", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		_, _ = io.WriteString(w, `{"text":"Elementary, my dear Watson."}`)
	}))
	defer server.Close()

	client := NewCohereClient(server.URL, "test-key", "test-model", testhelpers.NewLogger(io.Discard))

	text, err := client.Send(context.Background(), "Generate a new crime scenario", "You are a mystery writer.")
	require.NoError(t, err)
	require.Equal(t, "Elementary, my dear Watson.", text)
	require.Equal(t, "test-model", gotRequest.Model)
	require.Equal(t, "Generate a new crime scenario", gotRequest.Message)
	require.Equal(t, "You are a mystery writer.", gotRequest.Preamble)
}

func TestCohereClient_Send_missingTextTolerated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"finish_reason":"COMPLETE"}`)
	}))
	defer server.Close()

	client := NewCohereClient(server.URL, "test-key", "test-model", testhelpers.NewLogger(io.Discard))

	text, err := client.Send(context.Background(), "hi", "preamble")
	require.NoError(t, err)
	require.Equal(t, missingReplyPlaceholder, text)
}

func TestCohereClient_Send_httpErrorFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewCohereClient(server.URL, "test-key", "test-model", testhelpers.NewLogger(io.Discard))

	_, err := client.Send(context.Background(), "hi", "preamble")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCohereClient_Send_transportErrorFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewCohereClient(server.URL, "test-key", "test-model", testhelpers.NewLogger(io.Discard))

	_, err := client.Send(context.Background(), "hi", "preamble")
	require.ErrorIs(t, err, ErrUnavailable)
}
