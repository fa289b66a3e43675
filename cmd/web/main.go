package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/ai"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/archive"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/envstruct"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/game"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/logging"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/pprofserver"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/sqlite"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	htmx "github.com/donseba/go-htmx"
	"github.com/joho/godotenv"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	htmx           *htmx.HTMX
	games          *game.Manager
	caseArchive    *archive.CaseRepository
	templateDir    string
	staticDir      string
}

type configuration struct {
	Addr        string `env:"CLUECRAFT_ADDR" envDefault:"localhost:4000"`
	SQLiteURL   string `env:"CLUECRAFT_SQLITE_URL" envDefault:"./cluecraft.sqlite"`
	PprofPort   string `env:"CLUECRAFT_PPROF_PORT" envDefault:":6060"`
	TemplateDir string `env:"CLUECRAFT_TEMPLATE_DIR" envDefault:"./ui/templates"`
	StaticDir   string `env:"CLUECRAFT_STATIC_DIR" envDefault:"./ui/static"`
	// AIProvider selects the chat backend: "cohere" or "openai".
	AIProvider string `env:"CLUECRAFT_AI_PROVIDER" envDefault:"cohere"`
	AIBaseURL  string `env:"CLUECRAFT_AI_BASE_URL" envDefault:""`
	AIAPIKey   string `env:"CLUECRAFT_AI_API_KEY"`
	AIModel    string `env:"CLUECRAFT_AI_MODEL" envDefault:"command-a-03-2025"`
}

func main() {
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	})))

	// A missing .env file is fine; the environment may be set by other means.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Error(err.Error())
		os.Exit(1)
	}

	ctx := context.Background()
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server exited with error", errors.SlogError(err))
		os.Exit(1)
	}
}

// run wires the application together. lookupEnv is injected so tests can
// provide their own configuration.
func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var config configuration
	if err := envstruct.Populate(&config, lookupEnv); err != nil {
		return errors.Wrap(err, "populate configuration")
	}

	// pprof listens on localhost only so that it's not open to the world.
	pprofserver.Launch(config.PprofPort, logger)

	readWriteDB, readDB, err := sqlite.NewDB(config.SQLiteURL)
	if err != nil {
		return errors.Wrap(err, "open database", slog.String("url", config.SQLiteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to database", slog.String("url", config.SQLiteURL))

	aiClient, err := newAIClient(config, logger)
	if err != nil {
		return err
	}

	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(readWriteDB.DB, 24*time.Hour)
	sessionManager.Lifetime = 12 * time.Hour

	caseArchive := archive.NewCaseRepository(readWriteDB, readDB, logger)

	app := application{
		logger:         logger,
		sessionManager: sessionManager,
		htmx:           htmx.New(),
		games:          game.NewManager(aiClient, caseArchive, logger),
		caseArchive:    caseArchive,
		templateDir:    config.TemplateDir,
		staticDir:      config.StaticDir,
	}

	return app.configureAndStartServer(ctx, config.Addr)
}

func newAIClient(config configuration, logger *slog.Logger) (ai.Client, error) {
	switch config.AIProvider {
	case "cohere":
		return ai.NewCohereClient(config.AIBaseURL, config.AIAPIKey, config.AIModel, logger), nil
	case "openai":
		return ai.NewOpenAIClient(config.AIBaseURL, config.AIAPIKey, config.AIModel, logger), nil
	}
	return nil, errors.New("unknown AI provider", slog.String("provider", config.AIProvider))
}
