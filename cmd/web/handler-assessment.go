package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/internal/models"
	"github.com/myrjola/finbias/internal/personality"
	"github.com/myrjola/finbias/internal/questions"
)

type questionTemplateData struct {
	BaseTemplateData

	Question questions.Question
	Index    int
	Total    int
	Answered int
	// Selected is the option id the visitor chose earlier, if any.
	Selected string
	Last     bool
}

type incompleteTemplateData struct {
	BaseTemplateData

	// Missing lists the 1-based numbers of unanswered questions.
	Missing []int
}

// currentQuestion shows the first unanswered question or the last question when everything is answered.
func (app *application) currentQuestion(w http.ResponseWriter, r *http.Request) {
	answers, err := app.sessionAnswers(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	index := app.bank.Len() - 1
	if missing := app.missing(answers); len(missing) > 0 {
		index = missing[0] - 1
	}
	app.renderQuestion(w, r, index, answers)
}

func (app *application) question(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 || index >= app.bank.Len() {
		app.notFound(w, r)
		return
	}
	var answers []models.Answer
	if answers, err = app.sessionAnswers(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.renderQuestion(w, r, index, answers)
}

func (app *application) renderQuestion(w http.ResponseWriter, r *http.Request, index int, answers []models.Answer) {
	q, ok := app.bank.At(index)
	if !ok {
		app.notFound(w, r)
		return
	}
	app.markStarted(r.Context())

	data := questionTemplateData{
		BaseTemplateData: app.newBaseTemplateData(r),
		Question:         q,
		Index:            index,
		Total:            app.bank.Len(),
		Answered:         app.bank.Len() - len(app.missing(answers)),
		Selected:         "",
		Last:             index == app.bank.Len()-1,
	}
	for _, a := range answers {
		if a.QuestionID == q.ID {
			data.Selected = a.SelectedOptionID
		}
	}

	// Boosted navigation expects the whole page.
	if hx := app.htmx.NewHandler(w, r).Request(); hx.HxRequest && !hx.HxBoosted {
		app.renderTemplate(w, r, http.StatusOK, "assessment", "question", data)
		return
	}
	app.render(w, r, http.StatusOK, "assessment", data)
}

// missing returns the 1-based numbers of the questions without an answer in bank order.
func (app *application) missing(answers []models.Answer) []int {
	answered := make(map[int]bool, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = true
	}
	var missing []int
	for i, q := range app.bank.All() {
		if !answered[q.ID] {
			missing = append(missing, i+1)
		}
	}
	return missing
}

func (app *application) answer(w http.ResponseWriter, r *http.Request) {
	var (
		err        error
		index      int
		questionID int
		optionID   = r.PostFormValue("optionId")
	)
	if index, err = strconv.Atoi(r.PostFormValue("index")); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	if questionID, err = strconv.Atoi(r.PostFormValue("questionId")); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	if _, ok := app.bank.Option(questionID, optionID); !ok {
		app.clientError(w, r, http.StatusUnprocessableEntity)
		return
	}

	if err = app.saveAnswer(r.Context(), models.Answer{
		QuestionID:       questionID,
		SelectedOptionID: optionID,
		Timestamp:        time.Now().UTC(),
	}); err != nil {
		app.serverError(w, r, err)
		return
	}

	next := min(max(index+1, 0), app.bank.Len()-1)
	http.Redirect(w, r, fmt.Sprintf("/assessment/%d", next), http.StatusSeeOther)
}

// complete scores the answers of the session, stores the assessment and redirects to its results.
func (app *application) complete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	answers, err := app.sessionAnswers(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if missing := app.missing(answers); len(missing) > 0 {
		data := incompleteTemplateData{
			BaseTemplateData: app.newBaseTemplateData(r),
			Missing:          missing,
		}
		app.render(w, r, http.StatusUnprocessableEntity, "incomplete", data)
		return
	}

	assessment := app.assess(r, answers)
	assessment.ID = uuid.NewString()
	assessment.DurationSeconds = int(app.elapsed(ctx).Seconds())
	if err = app.assessments.Save(ctx, assessment); err != nil {
		app.serverError(w, r, err)
		return
	}
	primaryType := ""
	if assessment.Personality != nil {
		primaryType = assessment.Personality.PrimaryType.ID
	}
	app.observer.RecordAssessment(primaryType, time.Duration(assessment.DurationSeconds)*time.Second)
	app.logger.LogAttrs(ctx, slog.LevelInfo, "assessment completed",
		slog.String("assessment_id", assessment.ID), slog.String("primary_type", primaryType))

	app.clearProgress(ctx)
	if err = app.sessionManager.RenewToken(ctx); err != nil {
		app.serverError(w, r, errors.Wrap(err, "renew session token"))
		return
	}
	app.sessionManager.Put(ctx, completedAssessmentKey, assessment.ID)
	http.Redirect(w, r, "/results/"+assessment.ID, http.StatusSeeOther)
}

// assess scores and classifies answers. The classification is left out when it fails.
func (app *application) assess(r *http.Request, answers []models.Answer) models.Assessment {
	start := time.Now()
	card := app.engine.Scorecard(answers)
	classification, err := personality.Classify(card.Results)
	skipped := make(map[string]int)
	for _, s := range card.Skipped {
		skipped[string(s.Reason)]++
	}
	app.observer.RecordScoring(time.Since(start), skipped)

	assessment := models.Assessment{
		ID:              "",
		Answers:         answers,
		Results:         card.Results,
		Personality:     nil,
		DurationSeconds: 0,
		CompletedAt:     time.Now().UTC(),
	}
	if err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "classification failed", errors.SlogError(err))
		return assessment
	}
	assessment.Personality = &classification
	return assessment
}

func (app *application) reset(w http.ResponseWriter, r *http.Request) {
	app.clearProgress(r.Context())
	http.Redirect(w, r, "/assessment", http.StatusSeeOther)
}
