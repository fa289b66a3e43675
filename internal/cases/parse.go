package cases

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/models"
)

// ErrMalformedResponse signals that the model's reply could not be decoded
// into the expected shape, or that required fields were missing.
var ErrMalformedResponse = errors.NewSentinel("malformed model response")

// stripFences removes leading/trailing markdown code-fence markers, with or
// without a json language tag, plus surrounding whitespace. Models often wrap
// the requested JSON in a fenced block despite the instruction.
func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// ParseCase decodes a model reply into a case record.
func ParseCase(raw string) (models.Case, error) {
	var kase models.Case
	if err := json.Unmarshal([]byte(stripFences(raw)), &kase); err != nil {
		return models.Case{}, errors.Wrap(ErrMalformedResponse, "decode case", slog.String("cause", err.Error()))
	}

	var missing []string
	if kase.Title == "" {
		missing = append(missing, "title")
	}
	if kase.Scenario == "" {
		missing = append(missing, "scenario")
	}
	if len(kase.Characters) == 0 {
		missing = append(missing, "characters")
	}
	if len(kase.Conversations) == 0 {
		missing = append(missing, "conversations")
	}
	if kase.Culprit == "" {
		missing = append(missing, "culprit")
	}
	if len(missing) > 0 {
		return models.Case{}, errors.Wrap(ErrMalformedResponse, "case missing required fields",
			slog.Any("fields", missing))
	}

	return kase, nil
}

// ParseVerdict decodes a model reply into a verdict record.
func ParseVerdict(raw string) (models.Verdict, error) {
	var verdict models.Verdict
	if err := json.Unmarshal([]byte(stripFences(raw)), &verdict); err != nil {
		return models.Verdict{}, errors.Wrap(ErrMalformedResponse, "decode verdict", slog.String("cause", err.Error()))
	}

	var missing []string
	if verdict.Feedback == "" {
		missing = append(missing, "feedback")
	}
	if verdict.Reasoning == "" {
		missing = append(missing, "reasoning")
	}
	if len(missing) > 0 {
		return models.Verdict{}, errors.Wrap(ErrMalformedResponse, "verdict missing required fields",
			slog.Any("fields", missing))
	}

	return verdict, nil
}
