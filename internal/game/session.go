// Package game owns the single source of truth for a player's progress
// through the detective mini-game.
package game

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/models"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/toast"
)

// minDeductionLength is the minimum trimmed length of a deduction worth
// sending to the evaluator.
const minDeductionLength = 20

var (
	// ErrBusy rejects a generate/submit while another round trip is outstanding.
	// The UI disables its buttons while busy, so hitting this means a stale or
	// duplicated request.
	ErrBusy = errors.NewSentinel("an operation is already in progress")
	// ErrDeductionTooShort rejects a submit before any network call is made.
	ErrDeductionTooShort = errors.NewSentinel("deduction needs more detail")
)

// CaseGenerator produces a case record. Implementations must always return a
// usable record; a non-nil error marks the record as a fallback.
type CaseGenerator interface {
	Generate(ctx context.Context, difficulty models.Difficulty, language models.Language) (models.Case, error)
}

// DeductionEvaluator judges a deduction against a case, with the same
// fallback contract as [CaseGenerator].
type DeductionEvaluator interface {
	Evaluate(ctx context.Context, kase models.Case, deduction string, language models.Language) (models.Verdict, error)
}

// Session is the game-phase controller for one browser tab. All state
// mutations are atomic from the caller's point of view; the two async
// operations release the lock only for the duration of the network round
// trip and commit their result in one step.
type Session struct {
	mu            sync.Mutex
	phase         Phase
	difficulty    models.Difficulty
	language      models.Language
	activeCase    *models.Case
	userDeduction string
	evaluation    *models.Verdict
	busy          bool
	// epoch invalidates in-flight round trips on reset: a result committed
	// under a stale epoch is discarded, matching a player who navigated away.
	epoch uint64

	generator CaseGenerator
	evaluator DeductionEvaluator
	toasts    *toast.Buffer
	logger    *slog.Logger
}

// NewSession constructs a session at the home phase with medium difficulty
// and English copy.
func NewSession(generator CaseGenerator, evaluator DeductionEvaluator, toasts *toast.Buffer, logger *slog.Logger) *Session {
	return &Session{
		phase:      PhaseHome,
		difficulty: models.DifficultyMedium,
		language:   models.LanguageEnglish,
		generator:  generator,
		evaluator:  evaluator,
		toasts:     toasts,
		logger:     logger.With("source", "game.Session"),
	}
}

// Snapshot is a consistent copy of the session state plus the toasts queued
// since the previous snapshot.
type Snapshot struct {
	Phase         Phase             `json:"phase"`
	Difficulty    models.Difficulty `json:"difficulty"`
	Language      models.Language   `json:"language"`
	ActiveCase    *models.Case      `json:"activeCase,omitempty"`
	UserDeduction string            `json:"userDeduction"`
	Evaluation    *models.Verdict   `json:"evaluation,omitempty"`
	Busy          bool              `json:"busy"`
	Toasts        []toast.Toast     `json:"toasts,omitempty"`
}

// Snapshot returns the current state and drains the toast buffer.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := Snapshot{
		Phase:         s.phase,
		Difficulty:    s.difficulty,
		Language:      s.language,
		UserDeduction: s.userDeduction,
		Busy:          s.busy,
		Toasts:        s.toasts.Drain(),
	}
	if s.activeCase != nil {
		kase := *s.activeCase
		snapshot.ActiveCase = &kase
	}
	if s.evaluation != nil {
		evaluation := *s.evaluation
		snapshot.Evaluation = &evaluation
	}
	return snapshot
}

// SetDifficulty changes the difficulty for subsequently generated cases.
func (s *Session) SetDifficulty(difficulty models.Difficulty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.difficulty = difficulty
}

// SetLanguage changes the language for instructions and user-facing copy.
func (s *Session) SetLanguage(language models.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = language
}

// UpdateDeduction replaces the player's draft deduction text.
func (s *Session) UpdateDeduction(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userDeduction = text
}

// MoveToPhase transitions directly to the given phase. The UI decides what
// navigation to offer; the session does not gate it.
func (s *Session) MoveToPhase(phase Phase) error {
	if _, err := ParsePhase(string(phase)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = phase
	return nil
}

// GenerateNewCase asks the generator for a fresh case and moves to the
// scenario phase. The deduction draft and any previous evaluation are
// cleared. The phase advances even when the generator fell back to the
// placeholder case; the failure toast has already been queued by then.
func (s *Session) GenerateNewCase(ctx context.Context) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.busy = true
	epoch := s.epoch
	difficulty, language := s.difficulty, s.language
	s.mu.Unlock()

	kase, genErr := s.generator.Generate(ctx, difficulty, language)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "discarding case generated before reset")
		return nil
	}
	s.busy = false
	s.activeCase = &kase
	s.userDeduction = ""
	s.evaluation = nil
	s.phase = PhaseScenario

	if genErr != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "proceeding with fallback case", errors.SlogError(genErr))
		return nil
	}
	s.toasts.Notify(toast.Success(caseGeneratedMessage(language)))
	return nil
}

// SubmitDeduction sends the player's deduction to the evaluator and moves to
// the result phase. Too-short deductions are rejected locally with a toast,
// before any network call and without touching the busy flag.
func (s *Session) SubmitDeduction(ctx context.Context) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	if s.activeCase == nil || len(strings.TrimSpace(s.userDeduction)) < minDeductionLength {
		s.toasts.Notify(toast.Error(needMoreDetailMessage(s.language)))
		s.mu.Unlock()
		return ErrDeductionTooShort
	}
	s.busy = true
	epoch := s.epoch
	kase := *s.activeCase
	deduction, language := s.userDeduction, s.language
	s.mu.Unlock()

	verdict, evalErr := s.evaluator.Evaluate(ctx, kase, deduction, language)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "discarding verdict evaluated before reset")
		return nil
	}
	s.busy = false
	s.evaluation = &verdict
	s.phase = PhaseResult

	if evalErr != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "proceeding with fallback verdict", errors.SlogError(evalErr))
	}
	return nil
}

// Reset returns to the home phase and clears the case, deduction, and
// evaluation. Difficulty and language survive the reset. Any in-flight round
// trip is abandoned: its result will arrive under a stale epoch and be
// discarded.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.phase = PhaseHome
	s.activeCase = nil
	s.userDeduction = ""
	s.evaluation = nil
	s.busy = false
}
