package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func waitForReady(ctx context.Context, endpoint string) error {
	timeout := 1 * time.Second
	client := http.Client{}
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			endpoint,
			nil,
		); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return errors.Wrap(err, "close response body")
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(250 * time.Millisecond)
		}
	}
}

const (
	testCaseTitle       = "The Vanished Violin"
	testCaseCulprit     = "Ms. Adler"
	testVerdictFeedback = "Sharp eyes, detective."
)

// testCaseReply is what the fake AI backend returns for a generation request,
// wrapped in a code fence the way chat models tend to reply.
const testCaseReply = "```json\n" + `{
  "title": "The Vanished Violin",
  "scenario": "A priceless violin disappeared from the conservatory overnight.",
  "characters": [
    {"name": "Ms. Adler", "description": "A former concert violinist with mounting debts."},
    {"name": "Mr. Brook", "description": "The night guard who swears he saw nothing."}
  ],
  "conversations": [
    {"speaker": "Ms. Adler", "text": "I was home all evening, practising scales."},
    {"speaker": "Mr. Brook", "text": "Odd, the practice rooms were booked under your name."}
  ],
  "culprit": "Ms. Adler"
}` + "\n```"

const testVerdictReply = `{
  "correct": true,
  "feedback": "Sharp eyes, detective.",
  "reasoning": "The booking records contradict her alibi."
}`

// newFakeAIServer serves the chat endpoint the way the real backend does,
// answering generation and evaluation requests with canned replies.
func newFakeAIServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chat", r.URL.Path)

		var request struct {
			Model    string `json:"model"`
			Message  string `json:"message"`
			Preamble string `json:"preamble"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))

		reply := testVerdictReply
		if strings.Contains(request.Message, "Generate") {
			reply = testCaseReply
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]string{"text": reply}))
	}))
}

// newTestLookupEnv configures the server with a random port, an in-memory
// database, and the fake AI backend.
func newTestLookupEnv(aiBaseURL string) func(string) (string, bool) {
	env := map[string]string{
		"CLUECRAFT_ADDR":         "localhost:0",
		"CLUECRAFT_SQLITE_URL":   ":memory:",
		"CLUECRAFT_PPROF_PORT":   "",
		"CLUECRAFT_AI_BASE_URL":  aiBaseURL,
		"CLUECRAFT_AI_API_KEY":   "test-api-key",
		"CLUECRAFT_TEMPLATE_DIR": "../../ui/templates",
		"CLUECRAFT_STATIC_DIR":   "../../ui/static",
	}
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

// startTestServer starts the test server, waits for it to be ready, and returns the server URL for testing.
func startTestServer(t *testing.T, w io.Writer, lookupEnv func(string) (string, bool)) string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	// We need to grab the dynamically allocated port from the log output.
	addrCh := make(chan string, 1)
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "addr" {
				addrCh <- a.Value.String()
			}
			return a
		},
	})))

	// Start the server and wait for it to be ready.
	go func() {
		if err := run(ctx, logger, lookupEnv); err != nil {
			cancel()
			assert.NoError(t, err)
		}
	}()
	select {
	case <-ctx.Done():
		t.Fatal("server failed to start")
		return ""
	case addr := <-addrCh:
		// swap 127.0.0.1 with localhost so the cookie jar accepts the cookies
		port := strings.Split(addr, ":")[1]
		serverURL := fmt.Sprintf("http://localhost:%s", port)
		if err := waitForReady(ctx, fmt.Sprintf("%s/api/healthy", serverURL)); err != nil {
			require.NoError(t, err)
		}
		return serverURL
	}
}
