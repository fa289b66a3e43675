package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
)

const defaultTimeout = 60 * time.Second

// DefaultCohereBaseURL is used when no base URL is configured.
const DefaultCohereBaseURL = "https://api.cohere.ai"

// CohereClient calls the Cohere chat API. The preamble carries the
// instruction text and the message carries the short user message.
type CohereClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewCohereClient constructs a CohereClient. baseURL is the API root without
// a trailing slash, e.g. https://api.cohere.ai.
func NewCohereClient(baseURL, apiKey, model string, logger *slog.Logger) *CohereClient {
	if baseURL == "" {
		baseURL = DefaultCohereBaseURL
	}
	return &CohereClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger.With("source", "CohereClient"),
	}
}

type cohereChatRequest struct {
	Model    string `json:"model"`
	Message  string `json:"message"`
	Preamble string `json:"preamble"`
}

type cohereChatResponse struct {
	Text string `json:"text"`
}

// Send implements [Client].
func (c *CohereClient) Send(ctx context.Context, userMessage, preamble string) (string, error) {
	body, err := json.Marshal(cohereChatRequest{
		Model:    c.model,
		Message:  userMessage,
		Preamble: preamble,
	})
	if err != nil {
		return "", errors.Wrap(err, "marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "create chat request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(ErrUnavailable, "chat request", slog.String("cause", err.Error()))
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.LogAttrs(ctx, slog.LevelWarn, "could not close response body", errors.SlogError(closeErr))
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", errors.Wrap(ErrUnavailable, "unexpected status", slog.Int("status", resp.StatusCode))
	}

	var decoded cohereChatResponse
	if err = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&decoded); err != nil {
		return "", errors.Wrap(ErrUnavailable, "decode chat response", slog.String("cause", err.Error()))
	}

	if decoded.Text == "" {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "chat response missing text field")
		return missingReplyPlaceholder, nil
	}

	return decoded.Text, nil
}
