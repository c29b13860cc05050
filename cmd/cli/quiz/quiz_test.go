package quiz_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/myrjola/finbias/cmd/cli/quiz"
	"github.com/myrjola/finbias/internal/models"
	"github.com/stretchr/testify/require"
)

func TestQuestions(t *testing.T) {
	var out bytes.Buffer
	quiz.Questions.SetOut(&out)
	quiz.Questions.SetArgs([]string{"--json=false"})
	require.NoError(t, quiz.Questions.Execute())

	lines := strings.Split(out.String(), "\n")
	require.True(t, strings.HasPrefix(lines[0], "1. "), lines[0])
	require.Contains(t, out.String(), "10. ")
	require.Contains(t, out.String(), "lossAversion+")
}

func TestQuestionsJSON(t *testing.T) {
	var out bytes.Buffer
	quiz.Questions.SetOut(&out)
	quiz.Questions.SetArgs([]string{"--json"})
	require.NoError(t, quiz.Questions.Execute())

	var got []struct {
		ID      int `json:"id"`
		Options []struct {
			ID string `json:"id"`
		} `json:"options"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 10)
	require.Equal(t, 1, got[0].ID)
	require.NotEmpty(t, got[0].Options)
}

type scoreOutput struct {
	Results     []models.BiasResult    `json:"results"`
	Personality *models.Classification `json:"personality"`
	Skipped     []struct {
		Reason string `json:"reason"`
	} `json:"skipped"`
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		anchoring int
	}{
		{name: "configured maxima", args: []string{"--derived-maxima=false"}, anchoring: 12},
		{name: "derived maxima", args: []string{"--derived-maxima"}, anchoring: 10},
	}
	answers := `[
  {"questionId":1,"selectedOptionId":"b"},
  {"questionId":4,"selectedOptionId":"c"},
  {"questionId":7,"selectedOptionId":"b"},
  {"questionId":8,"selectedOptionId":"d"},
  {"questionId":9,"selectedOptionId":"b"},
  {"questionId":11,"selectedOptionId":"a"}
]`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			quiz.Score.SetIn(strings.NewReader(answers))
			quiz.Score.SetOut(&out)
			quiz.Score.SetArgs(append(tt.args, "-"))
			require.NoError(t, quiz.Score.Execute())

			var got scoreOutput
			require.NoError(t, json.Unmarshal(out.Bytes(), &got))
			require.Len(t, got.Results, 5)
			require.Equal(t, "anchoring", got.Results[4].ID)
			require.Equal(t, tt.anchoring, got.Results[4].Score)
			require.NotNil(t, got.Personality)
			require.Len(t, got.Skipped, 1)
			require.Equal(t, "unknown question", got.Skipped[0].Reason)
		})
	}
}

func TestScoreInvalidInput(t *testing.T) {
	var out bytes.Buffer
	quiz.Score.SetIn(strings.NewReader(`{"answers": "nope"}`))
	quiz.Score.SetOut(&out)
	quiz.Score.SetErr(&out)
	quiz.Score.SetArgs([]string{"--derived-maxima=false"})
	require.Error(t, quiz.Score.Execute())
}
