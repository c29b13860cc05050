package main

import (
	"io/fs"
	"net/http"

	"github.com/justinas/alice"
	"github.com/myrjola/finbias/internal/metrics"
	"github.com/myrjola/finbias/ui"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	static, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static", http.FileServerFS(static)))

	session := alice.New(app.sessionManager.LoadAndSave, app.noSurf, commonContext)

	mux.Handle("GET /{$}", session.ThenFunc(app.home))
	mux.Handle("GET /assessment", session.ThenFunc(app.currentQuestion))
	mux.Handle("GET /assessment/{index}", session.ThenFunc(app.question))
	mux.Handle("POST /assessment/answer", session.ThenFunc(app.answer))
	mux.Handle("POST /assessment/complete", session.ThenFunc(app.complete))
	mux.Handle("POST /assessment/reset", session.ThenFunc(app.reset))
	mux.Handle("GET /results/{id}", session.ThenFunc(app.results))
	mux.Handle("POST /results/{id}/feedback", session.ThenFunc(app.submitFeedback))
	mux.Handle("GET /contact", session.ThenFunc(app.contact))
	mux.Handle("POST /contact", session.ThenFunc(app.submitContact))
	mux.Handle("/", session.ThenFunc(app.notFound))

	mux.HandleFunc("GET /api/results/{id}", app.apiResult)
	mux.HandleFunc("POST /api/score", app.apiScore)
	mux.HandleFunc("POST /api/decision-tool", app.apiDecisionTool)
	mux.HandleFunc("GET /api/healthy", app.healthy)
	mux.Handle("GET /metrics", metrics.Handler(app.registry))

	common := alice.New(app.recoverPanic, app.logRequest, secureHeaders, app.observeRequest)
	return common.Then(mux)
}
