package main

import (
	"net/http"

	"github.com/myrjola/finbias/internal/catalog"
)

type homeTemplateData struct {
	BaseTemplateData

	QuestionCount int
	InProgress    bool
	Biases        []catalog.BiasCategory
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	data := homeTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		QuestionCount:    app.bank.Len(),
		InProgress:       app.sessionManager.Exists(r.Context(), answersKey),
		Biases:           app.catalog.All(),
	}

	app.render(w, r, http.StatusOK, "home", data)
}
