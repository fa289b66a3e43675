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

const evaluateDeductionMessage = "Evaluate user deduction"

// Evaluator judges a player's deduction against the active case.
type Evaluator struct {
	aiClient ai.Client
	notifier toast.Notifier
	logger   *slog.Logger
}

func NewEvaluator(aiClient ai.Client, notifier toast.Notifier, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		aiClient: aiClient,
		notifier: notifier,
		logger:   logger.With("source", "Evaluator"),
	}
}

// Evaluate asks the model for a verdict on the deduction. Failure handling
// mirrors [Generator.Generate]: the player is notified and the localized
// fallback verdict is returned together with a non-nil error.
func (e *Evaluator) Evaluate(
	ctx context.Context,
	kase models.Case,
	deduction string,
	language models.Language,
) (models.Verdict, error) {
	instruction := prompt.BuildEvaluationInstruction(kase, deduction, language)

	raw, err := e.aiClient.Send(ctx, evaluateDeductionMessage, instruction)
	if err != nil {
		return e.fallback(ctx, language, errors.Wrap(err, "send evaluation request"))
	}

	verdict, err := ParseVerdict(raw)
	if err != nil {
		return e.fallback(ctx, language, errors.Wrap(err, "parse verdict"))
	}

	return verdict, nil
}

func (e *Evaluator) fallback(ctx context.Context, language models.Language, err error) (models.Verdict, error) {
	e.logger.LogAttrs(ctx, slog.LevelError, "deduction evaluation failed", errors.SlogError(err))
	e.notifier.Notify(toast.Error(evaluationFailedMessage(language)))
	return FallbackVerdict(language), err
}
