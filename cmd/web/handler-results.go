package main

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/myrjola/finbias/internal/catalog"
	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/internal/models"
	"github.com/myrjola/finbias/internal/personality"
	"github.com/myrjola/finbias/internal/repositories"
	"github.com/myrjola/finbias/internal/scoring"
)

const (
	// highlighted is the number of biases covered by the blind spot analysis and the strategies.
	highlighted = 3

	minRating         = 1
	maxRating         = 5
	maxFeedbackLength = 2000
)

type personalityMatch struct {
	ID         string
	Name       string
	Percentage int
}

type resultsTemplateData struct {
	BaseTemplateData

	Assessment      models.Assessment
	Sorted          []models.BiasResult
	BlindSpots      []catalog.BlindSpotReport
	Recommendations []catalog.Recommendation
	Matches         []personalityMatch
	FeedbackSent    bool
}

func (app *application) results(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	assessment, err := app.assessments.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	sorted := scoring.Top(assessment.Results, len(assessment.Results))
	top := scoring.Top(sorted, highlighted)
	topIDs := make([]string, len(top))
	for i, result := range top {
		topIDs[i] = result.ID
	}

	var matches []personalityMatch
	if assessment.Personality != nil {
		for _, t := range personality.Types() {
			matches = append(matches, personalityMatch{
				ID:         t.ID,
				Name:       t.Name,
				Percentage: assessment.Personality.MatchPercentages[t.ID],
			})
		}
	}

	data := resultsTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Assessment:       assessment,
		Sorted:           sorted,
		BlindSpots:       app.catalog.BlindSpots(sorted, highlighted),
		Recommendations:  app.catalog.StrategiesFor(topIDs...),
		Matches:          matches,
		FeedbackSent:     r.URL.Query().Get("feedback") == "sent",
	}
	app.render(w, r, http.StatusOK, "results", data)
}

func (app *application) submitFeedback(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rating, err := strconv.Atoi(r.PostFormValue("rating"))
	if err != nil || rating < minRating || rating > maxRating {
		app.clientError(w, r, http.StatusUnprocessableEntity)
		return
	}
	message := strings.TrimSpace(r.PostFormValue("message"))
	if len(message) > maxFeedbackLength {
		app.clientError(w, r, http.StatusUnprocessableEntity)
		return
	}

	if _, err = app.feedback.Add(r.Context(), models.Feedback{
		ID:           0,
		AssessmentID: id,
		Rating:       rating,
		Message:      message,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}
	app.observer.RecordFeedback(rating)
	app.logger.LogAttrs(r.Context(), slog.LevelInfo, "feedback received",
		slog.String("assessment_id", id), slog.Int("rating", rating))

	http.Redirect(w, r, "/results/"+id+"?feedback=sent", http.StatusSeeOther)
}
