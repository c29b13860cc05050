package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/internal/models"
	"github.com/myrjola/finbias/internal/sqlite"
)

type FeedbackRepository struct {
	pools
	logger *slog.Logger
}

func NewFeedbackRepository(db *sqlite.Database, logger *slog.Logger) *FeedbackRepository {
	return &FeedbackRepository{
		pools:  newPools(db),
		logger: logger.With("source", "FeedbackRepository"),
	}
}

type feedbackRow struct {
	ID           int64  `db:"id"`
	AssessmentID string `db:"assessment_id"`
	Rating       int    `db:"rating"`
	Message      string `db:"message"`
	CreatedAt    string `db:"created_at"`
}

// Add stores feedback for an existing assessment and returns its id. Unknown assessments yield ErrNotFound.
func (r *FeedbackRepository) Add(ctx context.Context, feedback models.Feedback) (int64, error) {
	var exists bool
	if err := r.readWrite.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM assessments WHERE id = ?)`, feedback.AssessmentID); err != nil {
		return 0, errors.Wrap(err, "check assessment")
	}
	if !exists {
		return 0, errors.Wrap(ErrNotFound, "assessment", slog.String("assessment_id", feedback.AssessmentID))
	}

	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now()
	}
	row := feedbackRow{
		ID:           0,
		AssessmentID: feedback.AssessmentID,
		Rating:       feedback.Rating,
		Message:      feedback.Message,
		CreatedAt:    formatTime(feedback.CreatedAt),
	}
	result, err := r.readWrite.NamedExecContext(ctx, `INSERT INTO feedback (assessment_id, rating, message, created_at)
VALUES (:assessment_id, :rating, :message, :created_at)`, row)
	if err != nil {
		return 0, errors.Wrap(err, "insert feedback", slog.String("assessment_id", feedback.AssessmentID))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "last insert id")
	}
	return id, nil
}

// ListForAssessment returns the feedback of an assessment, oldest first.
func (r *FeedbackRepository) ListForAssessment(ctx context.Context, assessmentID string) ([]models.Feedback, error) {
	var rows []feedbackRow
	if err := r.readOnly.SelectContext(ctx, &rows, `SELECT id, assessment_id, rating, message, created_at
FROM feedback WHERE assessment_id = ? ORDER BY id`, assessmentID); err != nil {
		return nil, errors.Wrap(err, "select feedback", slog.String("assessment_id", assessmentID))
	}
	feedback := make([]models.Feedback, 0, len(rows))
	for _, row := range rows {
		createdAt, err := parseTime(row.CreatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "created at", slog.Int64("feedback_id", row.ID))
		}
		feedback = append(feedback, models.Feedback{
			ID:           row.ID,
			AssessmentID: row.AssessmentID,
			Rating:       row.Rating,
			Message:      row.Message,
			CreatedAt:    createdAt,
		})
	}
	return feedback, nil
}
