package main

import (
	"log/slog"
	"net/http"

	"github.com/myrjola/finbias/internal/errors"
)

type healthResponse struct {
	Status    string `json:"status"`
	Biases    int    `json:"biases"`
	Questions int    `json:"questions"`
}

// healthy reports whether the database answers and how much of the catalog is loaded.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Biases:    app.catalog.Len(),
		Questions: app.bank.Len(),
	}
	if err := app.assessments.Ping(r.Context()); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "database unavailable", errors.SlogError(err))
		resp.Status = "unavailable"
		app.writeJSON(w, r, http.StatusServiceUnavailable, resp)
		return
	}
	app.writeJSON(w, r, http.StatusOK, resp)
}
