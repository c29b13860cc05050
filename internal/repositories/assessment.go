package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/internal/models"
	"github.com/myrjola/finbias/internal/sqlite"
)

type AssessmentRepository struct {
	pools
	logger *slog.Logger
}

func NewAssessmentRepository(db *sqlite.Database, logger *slog.Logger) *AssessmentRepository {
	return &AssessmentRepository{
		pools:  newPools(db),
		logger: logger.With("source", "AssessmentRepository"),
	}
}

type assessmentRow struct {
	ID              string         `db:"id"`
	Answers         string         `db:"answers"`
	Results         string         `db:"results"`
	Personality     sql.NullString `db:"personality"`
	PrimaryType     sql.NullString `db:"primary_type"`
	DurationSeconds int            `db:"duration_seconds"`
	CompletedAt     string         `db:"completed_at"`
}

// Save stores a completed assessment. Saving an existing id replaces it.
func (r *AssessmentRepository) Save(ctx context.Context, assessment models.Assessment) error {
	var (
		row = assessmentRow{
			ID:              assessment.ID,
			DurationSeconds: assessment.DurationSeconds,
			CompletedAt:     formatTime(assessment.CompletedAt),
			Personality:     sql.NullString{},
			PrimaryType:     sql.NullString{},
		}
		data []byte
		err  error
	)
	if data, err = json.Marshal(nonNil(assessment.Answers)); err != nil {
		return errors.Wrap(err, "marshal answers")
	}
	row.Answers = string(data)
	if data, err = json.Marshal(nonNil(assessment.Results)); err != nil {
		return errors.Wrap(err, "marshal results")
	}
	row.Results = string(data)
	if assessment.Personality != nil {
		if data, err = json.Marshal(assessment.Personality); err != nil {
			return errors.Wrap(err, "marshal personality")
		}
		row.Personality = sql.NullString{String: string(data), Valid: true}
		row.PrimaryType = sql.NullString{String: assessment.Personality.PrimaryType.ID, Valid: true}
	}

	stmt := `INSERT OR REPLACE INTO assessments
    (id, answers, results, personality, primary_type, duration_seconds, completed_at)
VALUES (:id, :answers, :results, :personality, :primary_type, :duration_seconds, :completed_at)`
	if _, err = r.readWrite.NamedExecContext(ctx, stmt, row); err != nil {
		return errors.Wrap(err, "insert assessment", slog.String("assessment_id", assessment.ID))
	}
	return nil
}

// Get returns the assessment with the given id or ErrNotFound.
func (r *AssessmentRepository) Get(ctx context.Context, id string) (models.Assessment, error) {
	var row assessmentRow
	stmt := `SELECT id, answers, results, personality, primary_type, duration_seconds, completed_at
FROM assessments WHERE id = ?`
	if err := r.readOnly.GetContext(ctx, &row, stmt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Assessment{}, errors.Wrap(ErrNotFound, "assessment", slog.String("assessment_id", id))
		}
		return models.Assessment{}, errors.Wrap(err, "select assessment", slog.String("assessment_id", id))
	}

	assessment := models.Assessment{
		ID:              row.ID,
		DurationSeconds: row.DurationSeconds,
		Answers:         nil,
		Results:         nil,
		Personality:     nil,
	}
	var err error
	if assessment.CompletedAt, err = parseTime(row.CompletedAt); err != nil {
		return models.Assessment{}, errors.Wrap(err, "completed at")
	}
	if err = json.Unmarshal([]byte(row.Answers), &assessment.Answers); err != nil {
		return models.Assessment{}, errors.Wrap(err, "unmarshal answers")
	}
	if err = json.Unmarshal([]byte(row.Results), &assessment.Results); err != nil {
		return models.Assessment{}, errors.Wrap(err, "unmarshal results")
	}
	if row.Personality.Valid {
		var classification models.Classification
		if err = json.Unmarshal([]byte(row.Personality.String), &classification); err != nil {
			return models.Assessment{}, errors.Wrap(err, "unmarshal personality")
		}
		assessment.Personality = &classification
	}
	return assessment, nil
}

// CountByPrimaryType counts stored assessments per primary personality type id.
func (r *AssessmentRepository) CountByPrimaryType(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		PrimaryType string `db:"primary_type"`
		Count       int    `db:"count"`
	}
	stmt := `SELECT primary_type, COUNT(*) AS count
FROM assessments
WHERE primary_type IS NOT NULL
GROUP BY primary_type`
	if err := r.readOnly.SelectContext(ctx, &rows, stmt); err != nil {
		return nil, errors.Wrap(err, "count assessments")
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.PrimaryType] = row.Count
	}
	return counts, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
