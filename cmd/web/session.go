package main

import (
	"net/http"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/game"
)

const gameSessionKey = "gameSessionID"

// gameSession resolves the game session for the current browser session,
// creating one on first use. The game session ID lives in the scs-managed
// cookie session; the session itself lives in memory.
func (app *application) gameSession(r *http.Request) *game.Session {
	ctx := r.Context()
	id := app.sessionManager.GetString(ctx, gameSessionKey)
	if id == "" {
		id = app.games.NewSessionID()
		app.sessionManager.Put(ctx, gameSessionKey, id)
	}
	return app.games.Get(id)
}
