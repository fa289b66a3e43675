package main

import (
	"net/http"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/game"
)

type homeTemplateData struct {
	BaseTemplateData

	Game game.Snapshot
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	data := homeTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Game:             app.gameSession(r).Snapshot(),
	}

	app.render(w, r, http.StatusOK, "home", "base", data)
}
