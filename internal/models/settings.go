package models

import (
	"log/slog"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
)

// Difficulty controls how obvious the clues in a generated case are.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Language selects between the parallel en/fr instruction texts and the
// localized user-facing copy.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageFrench  Language = "fr"
)

var (
	ErrUnknownDifficulty = errors.NewSentinel("unknown difficulty")
	ErrUnknownLanguage   = errors.NewSentinel("unknown language")
)

// ParseDifficulty converts untrusted input into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(s), nil
	}
	return "", errors.Wrap(ErrUnknownDifficulty, "parse difficulty", slog.String("value", s))
}

// ParseLanguage converts untrusted input into a Language.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LanguageEnglish, LanguageFrench:
		return Language(s), nil
	}
	return "", errors.Wrap(ErrUnknownLanguage, "parse language", slog.String("value", s))
}
