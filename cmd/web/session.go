package main

import (
	"context"
	"encoding/gob"
	"encoding/json"
	"time"

	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/internal/models"
)

const (
	// answersKey holds the JSON encoded answers of the assessment in progress.
	answersKey = "answers"
	// startedAtKey holds the time the visitor first viewed a question.
	startedAtKey = "startedAt"
	// completedAssessmentKey holds the id of the last completed assessment.
	completedAssessmentKey = "assessmentID"
)

func init() {
	// Session values are gob encoded as interface values.
	gob.Register(time.Time{})
}

func (app *application) sessionAnswers(ctx context.Context) ([]models.Answer, error) {
	data := app.sessionManager.GetBytes(ctx, answersKey)
	if len(data) == 0 {
		return nil, nil
	}
	var answers []models.Answer
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, errors.Wrap(err, "unmarshal session answers")
	}
	return answers, nil
}

// saveAnswer stores answer in the session replacing an earlier answer to the same question.
func (app *application) saveAnswer(ctx context.Context, answer models.Answer) error {
	answers, err := app.sessionAnswers(ctx)
	if err != nil {
		return err
	}
	kept := answers[:0]
	for _, a := range answers {
		if a.QuestionID != answer.QuestionID {
			kept = append(kept, a)
		}
	}
	kept = append(kept, answer)
	var data []byte
	if data, err = json.Marshal(kept); err != nil {
		return errors.Wrap(err, "marshal session answers")
	}
	app.sessionManager.Put(ctx, answersKey, data)
	return nil
}

// markStarted records the start of the assessment unless it is already running.
func (app *application) markStarted(ctx context.Context) {
	if !app.sessionManager.Exists(ctx, startedAtKey) {
		app.sessionManager.Put(ctx, startedAtKey, time.Now())
	}
}

// elapsed returns the time since markStarted or zero when the start is unknown.
func (app *application) elapsed(ctx context.Context) time.Duration {
	started := app.sessionManager.GetTime(ctx, startedAtKey)
	if started.IsZero() {
		return 0
	}
	return time.Since(started)
}

func (app *application) clearProgress(ctx context.Context) {
	app.sessionManager.Remove(ctx, answersKey)
	app.sessionManager.Remove(ctx, startedAtKey)
}
