package game

import (
	"log/slog"
	"sync"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/ai"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/cases"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/toast"
	"github.com/google/uuid"
)

// Manager hands out one Session per browser tab, keyed by an opaque ID
// stored in the browser session. Sessions live in memory for the lifetime of
// the process; losing one on restart just puts the player back at home.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	aiClient ai.Client
	archiver cases.Archiver
	logger   *slog.Logger
}

// NewManager constructs a Manager. archiver may be nil to disable the case
// archive.
func NewManager(aiClient ai.Client, archiver cases.Archiver, logger *slog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		aiClient: aiClient,
		archiver: archiver,
		logger:   logger,
	}
}

// NewSessionID returns a fresh opaque session key.
func (m *Manager) NewSessionID() string {
	return uuid.NewString()
}

// Get returns the session for the given ID, creating it on first use. Each
// session gets its own toast buffer so notifications reach the right tab.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[id]; ok {
		return session
	}

	toasts := &toast.Buffer{}
	session := NewSession(
		cases.NewGenerator(m.aiClient, toasts, m.archiver, m.logger),
		cases.NewEvaluator(m.aiClient, toasts, m.logger),
		toasts,
		m.logger,
	)
	m.sessions[id] = session
	return session
}
