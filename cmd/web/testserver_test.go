package main

import (
	"io"
	"net/url"
	"strconv"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/finbias/internal/e2etest"
	"github.com/myrjola/finbias/internal/questions"
	"github.com/stretchr/testify/require"
)

func testLookupEnv(key string) (string, bool) {
	switch key {
	case "FINBIAS_ADDR":
		return "localhost:0", true
	case "FINBIAS_SQLITE_URL":
		return ":memory:", true
	case "FINBIAS_PPROF_ADDR":
		return "", true
	default:
		return "", false
	}
}

func startTestServer(t *testing.T) *e2etest.Server {
	t.Helper()
	server, err := e2etest.StartServer(t.Context(), io.Discard, testLookupEnv, run)
	require.NoError(t, err)
	return server
}

func answerValues(index int, q questions.Question, optionID string) url.Values {
	return url.Values{
		"index":      {strconv.Itoa(index)},
		"questionId": {strconv.Itoa(q.ID)},
		"optionId":   {optionID},
	}
}

// answerQuestion answers the question at index and returns the page the form redirected to.
func answerQuestion(t *testing.T, client *e2etest.Client, index int, optionID string) *goquery.Document {
	t.Helper()
	q, ok := questions.Default().At(index)
	require.True(t, ok, "question %d", index)
	path := "/assessment/" + strconv.Itoa(index)
	doc, err := client.SubmitForm(t.Context(), path, "/assessment/answer", answerValues(index, q, optionID))
	require.NoError(t, err)
	return doc
}
