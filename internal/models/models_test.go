package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/finbias/internal/models"
	"github.com/stretchr/testify/require"
)

func TestBiasResultLegacyKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  models.BiasResult
	}{
		{
			name:  "id",
			input: `{"id":"anchoring","score":4}`,
			want:  models.BiasResult{ID: "anchoring", Score: 4},
		},
		{
			name:  "legacy bias",
			input: `{"bias":"herdMentality","name":"Herd Mentality","score":7}`,
			want:  models.BiasResult{ID: "herdMentality", Name: "Herd Mentality", Score: 7},
		},
		{
			name:  "id wins over bias",
			input: `{"id":"lossAversion","bias":"anchoring","score":1}`,
			want:  models.BiasResult{ID: "lossAversion", Score: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.BiasResult
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			require.Equal(t, tt.want, got)
		})
	}
}

func TestAssessmentJSONRoundTrip(t *testing.T) {
	completed := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	assessment := models.Assessment{
		ID: "0b7c6c3e-8a7f-4c55-9d0e-1f3b8f6a2d11",
		Answers: []models.Answer{
			{QuestionID: 1, SelectedOptionID: "d", Timestamp: completed.Add(-time.Minute)},
		},
		Results: []models.BiasResult{
			{ID: "lossAversion", Name: "Loss Aversion", Description: "d", Effects: "e", Score: 2},
		},
		Personality: &models.Classification{
			PrimaryType:      models.PersonalityType{ID: "follower", Name: "The Follower", Strengths: []string{"Adaptive"}},
			SecondaryType:    models.PersonalityType{ID: "guardian", Name: "The Guardian", Weaknesses: []string{"Worry"}},
			MatchPercentages: map[string]int{"guardian": 45, "follower": 45, "optimizer": 5, "visionary": 5},
			Coordinates:      models.Coordinates{X: -8, Y: 0},
		},
		DurationSeconds: 95,
		CompletedAt:     completed,
	}

	data, err := json.Marshal(assessment)
	require.NoError(t, err)
	var got models.Assessment
	require.NoError(t, json.Unmarshal(data, &got))
	if diff := cmp.Diff(assessment, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
