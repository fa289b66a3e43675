package main

import (
	"net/http"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	fileServer := http.FileServer(http.Dir(app.staticDir))
	mux.Handle("GET /static/", cacheForeverHeaders(http.StripPrefix("/static", fileServer)))

	mux.HandleFunc("GET /api/healthy", app.healthy)

	session := alice.New(app.sessionManager.LoadAndSave, noSurf, commonContext)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("GET /cases", session.ThenFunc(app.pastCases))

	mux.Handle("GET /api/game/state", session.ThenFunc(app.gameState))
	mux.Handle("POST /api/game/settings", session.ThenFunc(app.gameSettings))
	mux.Handle("POST /api/game/case", session.ThenFunc(app.newCase))
	mux.Handle("POST /api/game/phase", session.ThenFunc(app.gamePhase))
	mux.Handle("POST /api/game/deduction/draft", session.ThenFunc(app.deductionDraft))
	mux.Handle("POST /api/game/deduction", session.ThenFunc(app.submitDeduction))
	mux.Handle("POST /api/game/reset", session.ThenFunc(app.resetGame))

	mux.Handle("GET /api/cases", session.ThenFunc(app.listCases))

	base := alice.New(app.recoverPanic, app.logRequest, app.secureHeaders)
	return base.Then(mux)
}
