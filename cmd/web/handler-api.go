package main

import (
	"net/http"
	"time"

	"github.com/myrjola/finbias/internal/catalog"
	"github.com/myrjola/finbias/internal/decisiontool"
	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/internal/models"
	"github.com/myrjola/finbias/internal/personality"
	"github.com/myrjola/finbias/internal/repositories"
	"github.com/myrjola/finbias/internal/scoring"
)

func (app *application) apiResult(w http.ResponseWriter, r *http.Request) {
	assessment, err := app.assessments.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.jsonClientError(w, r, http.StatusNotFound, "assessment not found")
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, assessment)
}

type scoreRequest struct {
	Answers []models.Answer `json:"answers"`
}

type scoreResponse struct {
	Results          []models.BiasResult       `json:"results"`
	Personality      *models.Classification    `json:"personality,omitempty"`
	PersonalityError string                    `json:"personalityError,omitempty"`
	TopBiases        []models.BiasResult       `json:"topBiases"`
	BlindSpots       []catalog.BlindSpotReport `json:"blindSpots"`
	Recommendations  []catalog.Recommendation  `json:"recommendations"`
	Skipped          []scoring.Skipped         `json:"skipped"`
}

// apiScore scores answers without storing anything.
func (app *application) apiScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.jsonClientError(w, r, http.StatusBadRequest, "request body must be a JSON object with answers")
		return
	}

	start := time.Now()
	card := app.engine.Scorecard(req.Answers)
	skipped := make(map[string]int)
	for _, s := range card.Skipped {
		skipped[string(s.Reason)]++
	}
	app.observer.RecordScoring(time.Since(start), skipped)

	top := scoring.Top(card.Results, highlighted)
	topIDs := make([]string, len(top))
	for i, result := range top {
		topIDs[i] = result.ID
	}
	resp := scoreResponse{
		Results:          card.Results,
		Personality:      nil,
		PersonalityError: "",
		TopBiases:        top,
		BlindSpots:       app.catalog.BlindSpots(top, highlighted),
		Recommendations:  app.catalog.StrategiesFor(topIDs...),
		Skipped:          card.Skipped,
	}
	if resp.Skipped == nil {
		resp.Skipped = []scoring.Skipped{}
	}
	if classification, err := personality.Classify(card.Results); err != nil {
		resp.PersonalityError = err.Error()
	} else {
		resp.Personality = &classification
	}
	app.writeJSON(w, r, http.StatusOK, resp)
}

type decisionToolRequest struct {
	Options []decisiontool.Investment `json:"options"`
	// ResultID refers to a stored assessment whose results are used. It takes precedence over Results.
	ResultID string              `json:"resultId"`
	Results  []models.BiasResult `json:"results"`
}

type decisionToolResponse struct {
	Options []decisiontool.Corrected `json:"options"`
}

func (app *application) apiDecisionTool(w http.ResponseWriter, r *http.Request) {
	var req decisionToolRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.jsonClientError(w, r, http.StatusBadRequest, "request body must be a JSON object with options")
		return
	}
	if err := decisiontool.Validate(req.Options); err != nil {
		app.jsonClientError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	results := req.Results
	if req.ResultID != "" {
		assessment, err := app.assessments.Get(r.Context(), req.ResultID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				app.jsonClientError(w, r, http.StatusNotFound, "assessment not found")
				return
			}
			app.serverError(w, r, err)
			return
		}
		results = assessment.Results
	}

	app.writeJSON(w, r, http.StatusOK, decisionToolResponse{
		Options: decisiontool.Correct(req.Options, results),
	})
}
