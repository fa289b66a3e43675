package main

import (
	"net/http"
	"strconv"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/archive"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
)

const defaultCaseListLimit = 20

type pastCasesTemplateData struct {
	BaseTemplateData

	Cases []archive.ArchivedCase
}

// pastCases renders the archive of previously generated mysteries.
func (app *application) pastCases(w http.ResponseWriter, r *http.Request) {
	archived, err := app.caseArchive.List(r.Context(), defaultCaseListLimit)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "list archived cases"))
		return
	}

	data := pastCasesTemplateData{
		BaseTemplateData: newBaseTemplateData(r),
		Cases:            archived,
	}
	app.render(w, r, http.StatusOK, "cases", "base", data)
}

// listCases is the JSON variant of the archive listing.
func (app *application) listCases(w http.ResponseWriter, r *http.Request) {
	limit := defaultCaseListLimit
	if rawLimit := r.URL.Query().Get("limit"); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 1 || parsed > 100 {
			app.clientError(w, r, http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	archived, err := app.caseArchive.List(r.Context(), limit)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "list archived cases"))
		return
	}
	app.writeJSON(w, r, http.StatusOK, archived)
}
