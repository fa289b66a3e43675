// Package play runs a full round of the detective game in the terminal. It
// talks to the same AI backend as the web server, configured through the same
// CLUECRAFT_AI_* environment variables.
package play

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/ai"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/cases"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/game"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/models"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/toast"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "game",
	Title: "Game operations",
}

func init() {
	Play.Flags().String("difficulty", "medium", "case difficulty: easy, medium or hard")
	Play.Flags().String("language", "en", "case language: en or fr")
}

var Play = &cobra.Command{
	Use:     "play",
	GroupID: "game",
	Short:   "Play a round in the terminal",
	Long:    `Generates a case, shows the scenario and conversation, reads your deduction from stdin and prints the verdict.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rawDifficulty, err := cmd.Flags().GetString("difficulty")
		if err != nil {
			return errors.Wrap(err, "read difficulty flag")
		}
		difficulty, err := models.ParseDifficulty(rawDifficulty)
		if err != nil {
			return err
		}
		rawLanguage, err := cmd.Flags().GetString("language")
		if err != nil {
			return errors.Wrap(err, "read language flag")
		}
		language, err := models.ParseLanguage(rawLanguage)
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))
		aiClient, err := newAIClient(logger)
		if err != nil {
			return err
		}

		toasts := &toast.Buffer{}
		session := game.NewSession(
			cases.NewGenerator(aiClient, toasts, nil, logger),
			cases.NewEvaluator(aiClient, toasts, logger),
			toasts,
			logger,
		)
		session.SetDifficulty(difficulty)
		session.SetLanguage(language)

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		fmt.Println("Writing your mystery…")
		if err = session.GenerateNewCase(ctx); err != nil {
			return err
		}
		snapshot := session.Snapshot()
		printToasts(snapshot.Toasts)
		printCase(snapshot.ActiveCase)

		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print("\nYour deduction (who did it and why)? ")
			line, readErr := reader.ReadString('\n')
			if readErr != nil {
				return errors.Wrap(readErr, "read deduction")
			}
			session.UpdateDeduction(strings.TrimSpace(line))
			if err = session.SubmitDeduction(ctx); err == nil {
				break
			}
			if errors.Is(err, game.ErrDeductionTooShort) {
				printToasts(session.Snapshot().Toasts)
				continue
			}
			return err
		}

		snapshot = session.Snapshot()
		printToasts(snapshot.Toasts)
		printVerdict(snapshot.Evaluation, snapshot.ActiveCase)
		return nil
	},
}

func newAIClient(logger *slog.Logger) (ai.Client, error) {
	var (
		provider = os.Getenv("CLUECRAFT_AI_PROVIDER")
		baseURL  = os.Getenv("CLUECRAFT_AI_BASE_URL")
		apiKey   = os.Getenv("CLUECRAFT_AI_API_KEY")
		model    = os.Getenv("CLUECRAFT_AI_MODEL")
	)
	if provider == "" {
		provider = "cohere"
	}
	if model == "" {
		model = "command-a-03-2025"
	}
	if apiKey == "" {
		return nil, errors.New("CLUECRAFT_AI_API_KEY is not set")
	}

	switch provider {
	case "cohere":
		return ai.NewCohereClient(baseURL, apiKey, model, logger), nil
	case "openai":
		return ai.NewOpenAIClient(baseURL, apiKey, model, logger), nil
	}
	return nil, errors.New("unknown AI provider", slog.String("provider", provider))
}

func printToasts(toasts []toast.Toast) {
	for _, t := range toasts {
		_, _ = fmt.Fprintf(os.Stderr, "[%s] %s\n", t.Level, t.Message)
	}
}

func printCase(kase *models.Case) {
	if kase == nil {
		return
	}
	fmt.Printf("\n== %s ==\n\n%s\n\nPersons of interest:\n", kase.Title, kase.Scenario)
	for _, character := range kase.Characters {
		fmt.Printf("  - %s: %s\n", character.Name, character.Description)
	}
	fmt.Println("\nThe conversation:")
	for _, exchange := range kase.Conversations {
		fmt.Printf("  %s: %s\n", exchange.Speaker, exchange.Text)
	}
}

func printVerdict(verdict *models.Verdict, kase *models.Case) {
	if verdict == nil {
		return
	}
	if verdict.Correct {
		fmt.Println("\nCase closed!")
	} else {
		fmt.Println("\nThe trail went cold.")
	}
	fmt.Printf("\n%s\n\n%s\n", verdict.Feedback, verdict.Reasoning)
	if kase != nil {
		fmt.Printf("\nThe culprit was %s.\n", kase.Culprit)
	}
}
