package models

import (
	"log/slog"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
)

// The JSON field names below are part of the prompt contract sent to the
// model. Changing them breaks parsing of the model's reply.

// Character is a suspect or witness in a case.
type Character struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Exchange is a single line of the suspects' conversation. The order of
// exchanges is the reveal order of the embedded clues.
type Exchange struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Case is a generated mystery. Culprit names exactly one of the characters.
type Case struct {
	Title         string      `json:"title"`
	Scenario      string      `json:"scenario"`
	Characters    []Character `json:"characters"`
	Conversations []Exchange  `json:"conversations"`
	Culprit       string      `json:"culprit"`
}

// Verdict is the evaluation of a player's deduction.
type Verdict struct {
	Correct   bool   `json:"correct"`
	Feedback  string `json:"feedback"`
	Reasoning string `json:"reasoning"`
}

var (
	// ErrUnknownCulprit signals that the culprit does not match any character name.
	ErrUnknownCulprit = errors.NewSentinel("culprit does not match any character")
	// ErrOrphanSpeaker signals a conversation speaker that matches no character.
	// Unlisted narrator or interviewer labels trip this too, so treat it as advisory.
	ErrOrphanSpeaker = errors.NewSentinel("speaker does not match any character")
)

// Validate cross-checks the referential integrity of a parsed case: the
// culprit and every conversation speaker should name a listed character.
// The model is not forced to honor this, so callers typically log the
// returned errors as warnings instead of rejecting the case.
func (c Case) Validate() error {
	names := make(map[string]struct{}, len(c.Characters))
	for _, character := range c.Characters {
		names[character.Name] = struct{}{}
	}

	var errorList []error
	if _, ok := names[c.Culprit]; !ok {
		errorList = append(errorList, errors.Wrap(ErrUnknownCulprit, "validate case",
			slog.String("culprit", c.Culprit)))
	}
	for _, exchange := range c.Conversations {
		if _, ok := names[exchange.Speaker]; !ok {
			errorList = append(errorList, errors.Wrap(ErrOrphanSpeaker, "validate case",
				slog.String("speaker", exchange.Speaker)))
		}
	}

	return errors.Join(errorList...)
}
