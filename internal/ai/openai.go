package ai

import (
	"context"
	"log/slog"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
	"github.com/sashabaranov/go-openai"
)

const maxTokens = 4096

// OpenAIClient adapts any OpenAI-compatible chat endpoint to [Client]. The
// preamble is sent as the system message.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAIClient constructs an OpenAIClient. An empty baseURL uses the
// upstream OpenAI API.
func NewOpenAIClient(baseURL, apiKey, model string, logger *slog.Logger) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
		logger: logger.With("source", "OpenAIClient"),
	}
}

// Send implements [Client].
func (c *OpenAIClient) Send(ctx context.Context, userMessage, preamble string) (string, error) {
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     c.model,
			MaxTokens: maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: preamble},
				{Role: openai.ChatMessageRoleUser, Content: userMessage},
			},
		},
	)
	if err != nil {
		return "", errors.Wrap(ErrUnavailable, "create chat completion", slog.String("cause", err.Error()))
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "chat completion missing content")
		return missingReplyPlaceholder, nil
	}

	return completion.Choices[0].Message.Content, nil
}
