// Package cases turns free-text model output into structured case data: it
// orchestrates instruction building, the chat round trip, and response
// parsing, falling back to placeholder records when anything fails.
package cases

import (
	"context"
	"log/slog"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/ai"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/models"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/prompt"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/toast"
)

// generateCaseMessage is the short fixed user message; the instruction text
// carries all the detail.
const generateCaseMessage = "Generate a new crime scenario"

// Archiver persists successfully generated cases. Archiving is best effort;
// failures are logged and never block the game.
type Archiver interface {
	Save(ctx context.Context, kase models.Case, difficulty models.Difficulty, language models.Language) (string, error)
}

// Generator produces validated case records.
type Generator struct {
	aiClient ai.Client
	notifier toast.Notifier
	archiver Archiver
	logger   *slog.Logger
}

// NewGenerator constructs a Generator. archiver may be nil to disable the
// case archive.
func NewGenerator(aiClient ai.Client, notifier toast.Notifier, archiver Archiver, logger *slog.Logger) *Generator {
	return &Generator{
		aiClient: aiClient,
		notifier: notifier,
		archiver: archiver,
		logger:   logger.With("source", "Generator"),
	}
}

// Generate asks the model for a new case. On any failure it notifies the
// player and returns the localized fallback case together with a non-nil
// error, so callers can proceed with the placeholder and still know it is
// one. The returned case is always usable.
func (g *Generator) Generate(
	ctx context.Context,
	difficulty models.Difficulty,
	language models.Language,
) (models.Case, error) {
	instruction := prompt.BuildGenerationInstruction(difficulty, language)

	raw, err := g.aiClient.Send(ctx, generateCaseMessage, instruction)
	if err != nil {
		return g.fallback(ctx, language, errors.Wrap(err, "send generation request"))
	}

	kase, err := ParseCase(raw)
	if err != nil {
		return g.fallback(ctx, language, errors.Wrap(err, "parse generated case"))
	}

	if validationErr := kase.Validate(); validationErr != nil {
		// The model broke referential integrity. The case is still playable,
		// so surface the problem without rejecting it.
		g.logger.LogAttrs(ctx, slog.LevelWarn, "generated case failed validation",
			errors.SlogError(validationErr))
	}

	if g.archiver != nil {
		if _, archiveErr := g.archiver.Save(ctx, kase, difficulty, language); archiveErr != nil {
			g.logger.LogAttrs(ctx, slog.LevelWarn, "could not archive case", errors.SlogError(archiveErr))
		}
	}

	return kase, nil
}

func (g *Generator) fallback(ctx context.Context, language models.Language, err error) (models.Case, error) {
	g.logger.LogAttrs(ctx, slog.LevelError, "case generation failed", errors.SlogError(err))
	g.notifier.Notify(toast.Error(generationFailedMessage(language)))
	return FallbackCase(language), err
}
