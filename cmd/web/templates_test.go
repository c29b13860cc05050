package main

import (
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/myrjola/finbias/internal/contexthelpers"
	"github.com/myrjola/finbias/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func Test_parsePageTemplates(t *testing.T) {
	templates, err := parsePageTemplates()
	require.NoError(t, err)
	for _, page := range []string{"assessment", "contact", "home", "incomplete", "notfound", "results"} {
		require.Contains(t, templates, page)
		require.NotNil(t, templates[page].Lookup("page"), page)
	}
}

func Test_application_renderBindsRequestFuncs(t *testing.T) {
	templates, err := parsePageTemplates()
	require.NoError(t, err)
	app := &application{
		logger:    testhelpers.NewLogger(io.Discard),
		templates: templates,
	}

	render := func(nonce string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/missing", nil)
		r = contexthelpers.SetCSPNonce(r, nonce)
		w := httptest.NewRecorder()
		app.render(w, r, http.StatusNotFound, "notfound", BaseTemplateData{CurrentPath: "/missing"})
		return w
	}

	// The parsed templates are shared so concurrent renders must not see each other's nonce.
	var wg sync.WaitGroup
	nonces := []string{"first-nonce", "second-nonce", "third-nonce", "fourth-nonce"}
	bodies := make([]string, len(nonces))
	for i, nonce := range nonces {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := render(nonce)
			if w.Code == http.StatusNotFound {
				bodies[i] = w.Body.String()
			}
		}()
	}
	wg.Wait()

	for i, nonce := range nonces {
		require.Contains(t, bodies[i], `nonce="`+nonce+`"`)
		for j, other := range nonces {
			if i != j {
				require.False(t, strings.Contains(bodies[i], other), "render %d leaked %s", i, other)
			}
		}
	}

	w := render("again")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Page not found")
}

func Test_application_renderUnknownPage(t *testing.T) {
	app := &application{
		logger:    testhelpers.NewLogger(io.Discard),
		templates: map[string]*template.Template{},
	}
	w := httptest.NewRecorder()
	app.render(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "missing", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
