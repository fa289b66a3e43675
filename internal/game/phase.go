package game

import (
	"log/slog"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
)

// Phase is one of the five stations of the linear game flow:
//
//	home → scenario → conversation → deduction → result
//
// Navigation among the middle phases is unrestricted so the player can go
// back and review evidence. Reset returns to home from anywhere.
type Phase string

const (
	PhaseHome         Phase = "home"
	PhaseScenario     Phase = "scenario"
	PhaseConversation Phase = "conversation"
	PhaseDeduction    Phase = "deduction"
	PhaseResult       Phase = "result"
)

var ErrUnknownPhase = errors.NewSentinel("unknown phase")

// ParsePhase converts untrusted input into a Phase.
func ParsePhase(s string) (Phase, error) {
	switch Phase(s) {
	case PhaseHome, PhaseScenario, PhaseConversation, PhaseDeduction, PhaseResult:
		return Phase(s), nil
	}
	return "", errors.Wrap(ErrUnknownPhase, "parse phase", slog.String("value", s))
}
