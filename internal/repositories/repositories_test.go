package repositories_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/myrjola/finbias/internal/models"
	"github.com/myrjola/finbias/internal/repositories"
	"github.com/myrjola/finbias/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func newAssessment(primaryType string) models.Assessment {
	completed := time.Date(2024, 6, 2, 9, 15, 30, 123456789, time.UTC)
	assessment := models.Assessment{
		ID: uuid.NewString(),
		Answers: []models.Answer{
			{QuestionID: 1, SelectedOptionID: "d", Timestamp: completed.Add(-2 * time.Minute)},
			{QuestionID: 2, SelectedOptionID: "a", Timestamp: completed.Add(-time.Minute)},
		},
		Results: []models.BiasResult{
			{ID: "lossAversion", Name: "Loss Aversion", Description: "desc", Effects: "effects", Score: 2},
		},
		Personality:     nil,
		DurationSeconds: 120,
		CompletedAt:     completed,
	}
	if primaryType != "" {
		assessment.Personality = &models.Classification{
			PrimaryType:      models.PersonalityType{ID: primaryType, Name: "The " + primaryType},
			SecondaryType:    models.PersonalityType{ID: "guardian", Name: "The Guardian"},
			MatchPercentages: map[string]int{"guardian": 45, "follower": 45, "optimizer": 5, "visionary": 5},
			Coordinates:      models.Coordinates{X: -1.6, Y: 2.5},
		}
	}
	return assessment
}

func TestAssessmentRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewAssessmentRepository(db, testhelpers.NewLogger(io.Discard))

	tests := []struct {
		name       string
		assessment models.Assessment
	}{
		{name: "with personality", assessment: newAssessment("follower")},
		{name: "without personality", assessment: newAssessment("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, repo.Save(ctx, tt.assessment))
			got, err := repo.Get(ctx, tt.assessment.ID)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.assessment, got); diff != "" {
				t.Errorf("Get() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, err := repo.Get(ctx, uuid.NewString())
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestAssessmentRepository_CountByPrimaryType(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewAssessmentRepository(db, testhelpers.NewLogger(io.Discard))

	for _, primaryType := range []string{"follower", "follower", "visionary", ""} {
		require.NoError(t, repo.Save(ctx, newAssessment(primaryType)))
	}
	counts, err := repo.CountByPrimaryType(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"follower": 2, "visionary": 1}, counts)
}

func TestFeedbackRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	assessments := repositories.NewAssessmentRepository(db, logger)
	repo := repositories.NewFeedbackRepository(db, logger)

	assessment := newAssessment("optimizer")
	require.NoError(t, assessments.Save(ctx, assessment))

	created := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	id, err := repo.Add(ctx, models.Feedback{AssessmentID: assessment.ID, Rating: 4, Message: "Spot on", CreatedAt: created})
	require.NoError(t, err)
	require.Positive(t, id)

	_, err = repo.Add(ctx, models.Feedback{AssessmentID: assessment.ID, Rating: 9})
	require.Error(t, err, "rating is constrained to 1-5")

	_, err = repo.Add(ctx, models.Feedback{AssessmentID: uuid.NewString(), Rating: 3})
	require.ErrorIs(t, err, repositories.ErrNotFound)

	got, err := repo.ListForAssessment(ctx, assessment.ID)
	require.NoError(t, err)
	require.Equal(t, []models.Feedback{
		{ID: id, AssessmentID: assessment.ID, Rating: 4, Message: "Spot on", CreatedAt: created},
	}, got)
}

func TestContactRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewContactRepository(db, testhelpers.NewLogger(io.Discard))

	first, err := repo.Add(ctx, models.ContactMessage{Name: "Ada", Email: "ada@example.com", Message: "Hello"})
	require.NoError(t, err)
	second, err := repo.Add(ctx, models.ContactMessage{Name: "Bob", Email: "bob@example.com", Message: "Hi"})
	require.NoError(t, err)

	got, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, second, got[0].ID)
	require.Equal(t, first, got[1].ID)
	require.Equal(t, "Ada", got[1].Name)
	require.False(t, got[1].CreatedAt.IsZero())

	limited, err := repo.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestAssessmentRepository_Ping(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewAssessmentRepository(db, testhelpers.NewLogger(io.Discard))
	require.NoError(t, repo.Ping(context.Background()))

	require.NoError(t, db.Close())
	require.Error(t, repo.Ping(context.Background()))
}
