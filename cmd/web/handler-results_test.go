package main

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/myrjola/finbias/internal/e2etest"
	"github.com/myrjola/finbias/internal/questions"
	"github.com/stretchr/testify/require"
)

// completeAssessment answers every question with optionID and returns the results path.
func completeAssessment(t *testing.T, client *e2etest.Client, optionID string) string {
	t.Helper()
	for i := range questions.Default().Len() {
		answerQuestion(t, client, i, optionID)
	}
	resp, err := client.PostForm(t.Context(), "/assessment/9", "/assessment/complete", url.Values{})
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return e2etest.FinalPath(resp)
}

func Test_application_feedback(t *testing.T) {
	server := startTestServer(t)
	client := server.Client()
	ctx := t.Context()
	resultsPath := completeAssessment(t, client, "b")

	tests := []struct {
		name   string
		values url.Values
		status int
	}{
		{name: "missing rating", values: url.Values{"message": {"Great"}}, status: http.StatusUnprocessableEntity},
		{name: "rating too high", values: url.Values{"rating": {"6"}}, status: http.StatusUnprocessableEntity},
		{name: "rating too low", values: url.Values{"rating": {"0"}}, status: http.StatusUnprocessableEntity},
		{
			name:   "message too long",
			values: url.Values{"rating": {"3"}, "message": {strings.Repeat("x", maxFeedbackLength+1)}},
			status: http.StatusUnprocessableEntity,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.PostForm(ctx, resultsPath, resultsPath+"/feedback", tt.values)
			require.NoError(t, err)
			_ = resp.Body.Close()
			require.Equal(t, tt.status, resp.StatusCode)
		})
	}

	doc, err := client.SubmitForm(ctx, resultsPath, resultsPath+"/feedback", url.Values{
		"rating":  {"4"},
		"message": {"The blind spot analysis was eye-opening."},
	})
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("#feedback-thanks").Length())
}
