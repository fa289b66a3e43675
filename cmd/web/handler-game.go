package main

import (
	"net/http"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/game"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/models"
)

// respondGameState ends every game mutation: htmx requests get the game
// fragment re-rendered, everything else gets the JSON snapshot.
func (app *application) respondGameState(w http.ResponseWriter, r *http.Request, status int, session *game.Session) {
	snapshot := session.Snapshot()
	if app.htmx.NewHandler(w, r).IsHxRequest() {
		data := homeTemplateData{
			BaseTemplateData: newBaseTemplateData(r),
			Game:             snapshot,
		}
		app.render(w, r, status, "home", "game", data)
		return
	}
	app.writeJSON(w, r, status, snapshot)
}

func (app *application) gameState(w http.ResponseWriter, r *http.Request) {
	app.respondGameState(w, r, http.StatusOK, app.gameSession(r))
}

func (app *application) gameSettings(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Difficulty string `json:"difficulty"`
		Language   string `json:"language"`
	}
	if !app.decodeJSONBody(w, r, &request) {
		return
	}

	session := app.gameSession(r)
	if request.Difficulty != "" {
		difficulty, err := models.ParseDifficulty(request.Difficulty)
		if err != nil {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
		session.SetDifficulty(difficulty)
	}
	if request.Language != "" {
		language, err := models.ParseLanguage(request.Language)
		if err != nil {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
		session.SetLanguage(language)
	}

	app.respondGameState(w, r, http.StatusOK, session)
}

func (app *application) newCase(w http.ResponseWriter, r *http.Request) {
	session := app.gameSession(r)
	if err := session.GenerateNewCase(r.Context()); err != nil {
		if errors.Is(err, game.ErrBusy) {
			app.clientError(w, r, http.StatusConflict)
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.respondGameState(w, r, http.StatusOK, session)
}

func (app *application) gamePhase(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Phase string `json:"phase"`
	}
	if !app.decodeJSONBody(w, r, &request) {
		return
	}

	phase, err := game.ParsePhase(request.Phase)
	if err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	session := app.gameSession(r)
	if err = session.MoveToPhase(phase); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	app.respondGameState(w, r, http.StatusOK, session)
}

func (app *application) deductionDraft(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Text string `json:"text"`
	}
	if !app.decodeJSONBody(w, r, &request) {
		return
	}

	session := app.gameSession(r)
	session.UpdateDeduction(request.Text)
	app.respondGameState(w, r, http.StatusOK, session)
}

func (app *application) submitDeduction(w http.ResponseWriter, r *http.Request) {
	session := app.gameSession(r)
	if err := session.SubmitDeduction(r.Context()); err != nil {
		switch {
		case errors.Is(err, game.ErrBusy):
			app.clientError(w, r, http.StatusConflict)
		case errors.Is(err, game.ErrDeductionTooShort):
			// The "need more detail" toast is already queued; return the
			// state so the UI can show it.
			app.respondGameState(w, r, http.StatusUnprocessableEntity, session)
		default:
			app.serverError(w, r, err)
		}
		return
	}
	app.respondGameState(w, r, http.StatusOK, session)
}

func (app *application) resetGame(w http.ResponseWriter, r *http.Request) {
	session := app.gameSession(r)
	session.Reset()
	app.respondGameState(w, r, http.StatusOK, session)
}
