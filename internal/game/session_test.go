package game

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/cases"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/models"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/testhelpers"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/toast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errGenerationFailed = errors.NewSentinel("generation failed")

type fakeGenerator struct {
	kase  models.Case
	err   error
	calls int
}

func (g *fakeGenerator) Generate(_ context.Context, _ models.Difficulty, language models.Language) (models.Case, error) {
	g.calls++
	if g.err != nil {
		return cases.FallbackCase(language), g.err
	}
	return g.kase, nil
}

type fakeEvaluator struct {
	verdict models.Verdict
	err     error
	calls   int
}

func (e *fakeEvaluator) Evaluate(_ context.Context, _ models.Case, _ string, language models.Language) (models.Verdict, error) {
	e.calls++
	if e.err != nil {
		return cases.FallbackVerdict(language), e.err
	}
	return e.verdict, nil
}

func testCase() models.Case {
	return models.Case{
		Title:    "The Silent Server Room",
		Scenario: "A prototype vanishes from a tech startup in Singapore overnight.",
		Characters: []models.Character{
			{Name: "Mina Okafor", Description: "CTO, last to leave"},
			{Name: "Paul Leclerc", Description: "Night guard"},
			{Name: "Dana Wirth", Description: "Disgruntled investor"},
			{Name: "Ravi Shah", Description: "Intern with badge access"},
		},
		Conversations: []models.Exchange{
			{Speaker: "Mina Okafor", Text: "I locked up at midnight, as always."},
			{Speaker: "Paul Leclerc", Text: "The cameras went dark for twenty minutes."},
		},
		Culprit: "Dana Wirth",
	}
}

func newTestSession(generator CaseGenerator, evaluator DeductionEvaluator) *Session {
	return NewSession(generator, evaluator, &toast.Buffer{}, testhelpers.NewLogger(io.Discard))
}

func TestSession_initialState(t *testing.T) {
	session := newTestSession(&fakeGenerator{}, &fakeEvaluator{})
	snapshot := session.Snapshot()

	require.Equal(t, PhaseHome, snapshot.Phase)
	require.Equal(t, models.DifficultyMedium, snapshot.Difficulty)
	require.Equal(t, models.LanguageEnglish, snapshot.Language)
	require.Nil(t, snapshot.ActiveCase)
	require.Nil(t, snapshot.Evaluation)
	require.False(t, snapshot.Busy)
}

func TestSession_generateNewCase(t *testing.T) {
	generator := &fakeGenerator{kase: testCase()}
	session := newTestSession(generator, &fakeEvaluator{})
	session.UpdateDeduction("leftover text from a previous case")

	require.NoError(t, session.GenerateNewCase(context.Background()))

	snapshot := session.Snapshot()
	require.Equal(t, PhaseScenario, snapshot.Phase)
	require.NotNil(t, snapshot.ActiveCase)
	require.Equal(t, "The Silent Server Room", snapshot.ActiveCase.Title)
	require.Empty(t, snapshot.UserDeduction)
	require.Nil(t, snapshot.Evaluation)
	require.False(t, snapshot.Busy)
	require.Equal(t, []toast.Toast{toast.Success("New case generated successfully!")}, snapshot.Toasts)

	// Toasts are drained by the snapshot.
	require.Empty(t, session.Snapshot().Toasts)
}

func TestSession_generateNewCase_fallbackAlsoAdvancesPhase(t *testing.T) {
	generator := &fakeGenerator{err: errGenerationFailed}
	session := newTestSession(generator, &fakeEvaluator{})

	require.NoError(t, session.GenerateNewCase(context.Background()))

	snapshot := session.Snapshot()
	require.Equal(t, PhaseScenario, snapshot.Phase)
	require.NotNil(t, snapshot.ActiveCase)
	require.Equal(t, "Error in Case Generation", snapshot.ActiveCase.Title)
	require.False(t, snapshot.Busy)
	// No success toast on the fallback path. The failure toast is the
	// generator's responsibility, and the fake does not emit one.
	require.Empty(t, snapshot.Toasts)
}

func TestSession_submitDeduction_rejectsEmpty(t *testing.T) {
	generator := &fakeGenerator{kase: testCase()}
	evaluator := &fakeEvaluator{}
	session := newTestSession(generator, evaluator)
	require.NoError(t, session.GenerateNewCase(context.Background()))

	err := session.SubmitDeduction(context.Background())
	require.ErrorIs(t, err, ErrDeductionTooShort)

	snapshot := session.Snapshot()
	require.Equal(t, PhaseScenario, snapshot.Phase)
	require.Nil(t, snapshot.Evaluation)
	require.False(t, snapshot.Busy)
	require.Zero(t, evaluator.calls)
	require.Contains(t, snapshot.Toasts, toast.Error("Please provide a more detailed deduction"))
}

func TestSession_submitDeduction_lengthBoundary(t *testing.T) {
	t.Run("19 characters rejected", func(t *testing.T) {
		evaluator := &fakeEvaluator{verdict: models.Verdict{Correct: true, Feedback: "f", Reasoning: "r"}}
		session := newTestSession(&fakeGenerator{kase: testCase()}, evaluator)
		require.NoError(t, session.GenerateNewCase(context.Background()))

		session.UpdateDeduction(strings.Repeat("a", 19))
		require.ErrorIs(t, session.SubmitDeduction(context.Background()), ErrDeductionTooShort)
		require.Zero(t, evaluator.calls)
	})

	t.Run("20 characters accepted", func(t *testing.T) {
		evaluator := &fakeEvaluator{verdict: models.Verdict{Correct: true, Feedback: "f", Reasoning: "r"}}
		session := newTestSession(&fakeGenerator{kase: testCase()}, evaluator)
		require.NoError(t, session.GenerateNewCase(context.Background()))

		session.UpdateDeduction(strings.Repeat("a", 20))
		require.NoError(t, session.SubmitDeduction(context.Background()))
		require.Equal(t, 1, evaluator.calls)
		require.Equal(t, PhaseResult, session.Snapshot().Phase)
	})

	t.Run("surrounding whitespace does not count", func(t *testing.T) {
		evaluator := &fakeEvaluator{}
		session := newTestSession(&fakeGenerator{kase: testCase()}, evaluator)
		require.NoError(t, session.GenerateNewCase(context.Background()))

		session.UpdateDeduction("   " + strings.Repeat("a", 19) + "   ")
		require.ErrorIs(t, session.SubmitDeduction(context.Background()), ErrDeductionTooShort)
		require.Zero(t, evaluator.calls)
	})
}

func TestSession_submitDeduction_withoutCase(t *testing.T) {
	evaluator := &fakeEvaluator{}
	session := newTestSession(&fakeGenerator{}, evaluator)
	session.UpdateDeduction(strings.Repeat("a", 40))

	require.ErrorIs(t, session.SubmitDeduction(context.Background()), ErrDeductionTooShort)
	require.Zero(t, evaluator.calls)
	require.Equal(t, PhaseHome, session.Snapshot().Phase)
}

func TestSession_submitDeduction_fallbackVerdictStillAdvances(t *testing.T) {
	evaluator := &fakeEvaluator{err: errors.NewSentinel("evaluation failed")}
	session := newTestSession(&fakeGenerator{kase: testCase()}, evaluator)
	require.NoError(t, session.GenerateNewCase(context.Background()))
	session.UpdateDeduction("I believe the investor sabotaged the prototype.")

	require.NoError(t, session.SubmitDeduction(context.Background()))

	snapshot := session.Snapshot()
	require.Equal(t, PhaseResult, snapshot.Phase)
	require.NotNil(t, snapshot.Evaluation)
	require.False(t, snapshot.Evaluation.Correct)
	require.False(t, snapshot.Busy)
}

func TestSession_reset(t *testing.T) {
	session := newTestSession(&fakeGenerator{kase: testCase()}, &fakeEvaluator{verdict: models.Verdict{Correct: true, Feedback: "f", Reasoning: "r"}})
	session.SetDifficulty(models.DifficultyHard)
	session.SetLanguage(models.LanguageFrench)
	require.NoError(t, session.GenerateNewCase(context.Background()))
	session.UpdateDeduction("Je crois que l'investisseur a saboté le prototype.")
	require.NoError(t, session.SubmitDeduction(context.Background()))

	session.Reset()

	snapshot := session.Snapshot()
	require.Equal(t, PhaseHome, snapshot.Phase)
	require.Nil(t, snapshot.ActiveCase)
	require.Nil(t, snapshot.Evaluation)
	require.Empty(t, snapshot.UserDeduction)
	require.False(t, snapshot.Busy)
	// Settings survive the reset.
	require.Equal(t, models.DifficultyHard, snapshot.Difficulty)
	require.Equal(t, models.LanguageFrench, snapshot.Language)
}

func TestSession_moveToPhase(t *testing.T) {
	session := newTestSession(&fakeGenerator{kase: testCase()}, &fakeEvaluator{})
	require.NoError(t, session.GenerateNewCase(context.Background()))

	require.NoError(t, session.MoveToPhase(PhaseConversation))
	require.Equal(t, PhaseConversation, session.Snapshot().Phase)

	require.NoError(t, session.MoveToPhase(PhaseDeduction))
	require.Equal(t, PhaseDeduction, session.Snapshot().Phase)

	// Back to the conversation to review evidence.
	require.NoError(t, session.MoveToPhase(PhaseConversation))
	require.Equal(t, PhaseConversation, session.Snapshot().Phase)

	require.ErrorIs(t, session.MoveToPhase(Phase("intermission")), ErrUnknownPhase)
}

func TestSession_endToEnd(t *testing.T) {
	generator := &fakeGenerator{kase: testCase()}
	evaluator := &fakeEvaluator{verdict: models.Verdict{
		Correct:   true,
		Feedback:  "Sharp reasoning.",
		Reasoning: "The camera blackout was the key clue and you caught it.",
	}}
	session := newTestSession(generator, evaluator)

	snapshot := session.Snapshot()
	require.Equal(t, PhaseHome, snapshot.Phase)
	require.Equal(t, models.DifficultyMedium, snapshot.Difficulty)
	require.Equal(t, models.LanguageEnglish, snapshot.Language)

	require.NoError(t, session.GenerateNewCase(context.Background()))
	snapshot = session.Snapshot()
	require.Equal(t, PhaseScenario, snapshot.Phase)
	require.NotNil(t, snapshot.ActiveCase)

	require.NoError(t, session.MoveToPhase(PhaseConversation))
	require.Equal(t, PhaseConversation, session.Snapshot().Phase)

	session.UpdateDeduction("I believe the butler did it because his alibi contradicts the timeline.")
	require.NoError(t, session.SubmitDeduction(context.Background()))

	snapshot = session.Snapshot()
	require.Equal(t, PhaseResult, snapshot.Phase)
	require.NotNil(t, snapshot.Evaluation)
	assert.True(t, snapshot.Evaluation.Correct)
}

type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
	kase    models.Case
}

func (g *blockingGenerator) Generate(context.Context, models.Difficulty, models.Language) (models.Case, error) {
	close(g.started)
	<-g.release
	return g.kase, nil
}

func TestSession_busyGuard(t *testing.T) {
	generator := &blockingGenerator{
		started: make(chan struct{}),
		release: make(chan struct{}),
		kase:    testCase(),
	}
	session := newTestSession(generator, &fakeEvaluator{})

	done := make(chan error, 1)
	go func() {
		done <- session.GenerateNewCase(context.Background())
	}()
	<-generator.started

	require.True(t, session.Snapshot().Busy)
	require.ErrorIs(t, session.GenerateNewCase(context.Background()), ErrBusy)
	require.ErrorIs(t, session.SubmitDeduction(context.Background()), ErrBusy)

	close(generator.release)
	require.NoError(t, <-done)
	require.False(t, session.Snapshot().Busy)
}

func TestSession_resetDiscardsInFlightCase(t *testing.T) {
	generator := &blockingGenerator{
		started: make(chan struct{}),
		release: make(chan struct{}),
		kase:    testCase(),
	}
	session := newTestSession(generator, &fakeEvaluator{})

	done := make(chan error, 1)
	go func() {
		done <- session.GenerateNewCase(context.Background())
	}()
	<-generator.started

	session.Reset()
	close(generator.release)
	require.NoError(t, <-done)

	snapshot := session.Snapshot()
	require.Equal(t, PhaseHome, snapshot.Phase)
	require.Nil(t, snapshot.ActiveCase)
	require.False(t, snapshot.Busy)
}
