package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/contexthelpers"
	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
)

type BaseTemplateData struct {
	CurrentPath string
}

func newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		CurrentPath: contexthelpers.CurrentPath(r.Context()),
	}
}

// pageTemplate returns a template for the given page name.
//
// pageName corresponds to a directory inside the ui/templates/pages folder. It has to include a template named "page".
func (app *application) pageTemplate(pageName string) (*template.Template, error) {
	files := []string{
		filepath.Join(app.templateDir, "base.gohtml"),
	}

	pageTemplateFiles, err := filepath.Glob(filepath.Join(app.templateDir, "pages", pageName, "*.gohtml"))
	if err != nil {
		return nil, errors.Wrap(err, "glob page template files", slog.String("page", pageName))
	}
	files = append(files, pageTemplateFiles...)

	// We need to initialize the FuncMap before parsing the files. These will be overridden in the render function.
	return template.New(pageName).Funcs(template.FuncMap{
		"nonce": func() string {
			panic("not implemented")
		},
		"csrf": func() string {
			panic("not implemented")
		},
	}).ParseFiles(files...)
}

// render writes the page wrapped in the base layout. templateName is usually
// "base"; htmx requests pass a fragment name to swap only part of the page.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, pageName, templateName string, data any) {
	t, err := app.pageTemplate(pageName)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "parse template", slog.String("template", pageName)))
		return
	}

	buf := new(bytes.Buffer)
	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=\"%s\"", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=\"%s\"/>", contexthelpers.CSRFToken(ctx))
	t.Funcs(template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // we trust the nonce since it's not provided by user.
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // we trust the csrf since it's not provided by user.
		},
	})
	if err = t.ExecuteTemplate(buf, templateName, data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template", slog.String("template", templateName)))
		return
	}

	w.WriteHeader(status)

	_, _ = buf.WriteTo(w)
}
