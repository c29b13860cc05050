package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/myrjola/finbias/internal/catalog"
	"github.com/myrjola/finbias/internal/contexthelpers"
	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/ui"
)

type BaseTemplateData struct {
	CurrentPath string
	// ResultsID is the id of the assessment the visitor completed last, if any.
	ResultsID string
}

func (app *application) newBaseTemplateData(r *http.Request) BaseTemplateData {
	return BaseTemplateData{
		CurrentPath: contexthelpers.CurrentPath(r.Context()),
		ResultsID:   app.sessionManager.GetString(r.Context(), completedAssessmentKey),
	}
}

var templateFuncs = template.FuncMap{
	"inc":      func(i int) int { return i + 1 },
	"dec":      func(i int) int { return i - 1 },
	"severity": catalog.SeverityOf,
}

// pageTemplate returns a template for the given page name.
//
// pageName corresponds to directory inside ui/templates/pages folder. It has to include a template named "page".
func pageTemplate(pageName string) (*template.Template, error) {
	funcs := template.FuncMap{
		// nonce and csrf are overridden in the render function.
		"nonce": func() template.HTMLAttr {
			panic("not implemented")
		},
		"csrf": func() template.HTML {
			panic("not implemented")
		},
	}
	for name, fn := range templateFuncs {
		funcs[name] = fn
	}
	t, err := template.New(pageName).Funcs(funcs).ParseFS(ui.Files,
		"templates/base.gohtml",
		fmt.Sprintf("templates/pages/%s/*.gohtml", pageName),
	)
	if err != nil {
		return nil, errors.Wrap(err, "parse templates", slog.String("page", pageName))
	}
	return t, nil
}

// parsePageTemplates parses every page under ui/templates/pages once. The returned templates are never executed
// directly, render clones them so that the request scoped functions can be bound.
func parsePageTemplates() (map[string]*template.Template, error) {
	entries, err := fs.ReadDir(ui.Files, "templates/pages")
	if err != nil {
		return nil, errors.Wrap(err, "read pages")
	}
	pages := make(map[string]*template.Template, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		var t *template.Template
		if t, err = pageTemplate(entry.Name()); err != nil {
			return nil, err
		}
		pages[entry.Name()] = t
	}
	return pages, nil
}

func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	app.renderTemplate(w, r, status, page, "base", data)
}

// renderTemplate executes the named template of page. Use it with a fragment name to answer htmx requests.
func (app *application) renderTemplate(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	page string,
	name string,
	data any,
) {
	var (
		err error
		t   *template.Template
	)

	parsed, ok := app.templates[page]
	if !ok {
		app.serverError(w, r, errors.New("template not found", slog.String("template", page)))
		return
	}
	if t, err = parsed.Clone(); err != nil {
		app.serverError(w, r, errors.Wrap(err, "clone template", slog.String("template", page)))
		return
	}

	buf := new(bytes.Buffer)
	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=%q", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=%q/>", contexthelpers.CSRFToken(ctx))
	t.Funcs(template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // we trust the nonce since it's not provided by user.
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // we trust the csrf since it's not provided by user.
		},
	})
	if err = t.ExecuteTemplate(buf, name, data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template",
			slog.String("template", page), slog.String("name", name)))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	_, _ = buf.WriteTo(w)
}
