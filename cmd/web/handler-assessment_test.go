package main

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/finbias/internal/catalog"
	"github.com/myrjola/finbias/internal/e2etest"
	"github.com/myrjola/finbias/internal/models"
	"github.com/myrjola/finbias/internal/personality"
	"github.com/myrjola/finbias/internal/questions"
	"github.com/myrjola/finbias/internal/scoring"
	"github.com/stretchr/testify/require"
)

func Test_application_assessment(t *testing.T) {
	server := startTestServer(t)
	client := server.Client()
	ctx := t.Context()
	bank := questions.Default()

	doc, err := client.GetDoc(ctx, "/assessment")
	require.NoError(t, err)
	require.Contains(t, doc.Find(".progress").Text(), "Question 1 of 10")
	require.Equal(t, 0, doc.Find("form[action='/assessment/complete']").Length())

	answers := make([]models.Answer, 0, bank.Len())
	for i, q := range bank.All() {
		doc = answerQuestion(t, client, i, "a")
		answers = append(answers, models.Answer{QuestionID: q.ID, SelectedOptionID: "a"})
	}
	// The last answer stays on the last question which offers completion.
	require.Contains(t, doc.Find(".progress").Text(), "Question 10 of 10, 10 answered")
	require.Equal(t, 1, doc.Find("form[action='/assessment/complete']").Length())

	resp, err := client.PostForm(ctx, "/assessment/9", "/assessment/complete", url.Values{})
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resultsPath := e2etest.FinalPath(resp)
	require.True(t, strings.HasPrefix(resultsPath, "/results/"), resultsPath)
	id := strings.TrimPrefix(resultsPath, "/results/")

	doc, err = goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)

	results := scoring.New(catalog.Default(), bank).Score(answers)
	want, err := personality.Classify(results)
	require.NoError(t, err)

	require.Equal(t, want.PrimaryType.Name, strings.TrimSpace(doc.Find("#primary-type").Text()))
	require.Contains(t, doc.Find("#secondary-type").Text(), want.SecondaryType.Name)
	require.Equal(t, 5, doc.Find("ul.scores li").Length())
	require.Equal(t, 4, doc.Find("ul.matches li").Length())
	require.Equal(t, 3, doc.Find("article.blind-spot").Length())
	require.Equal(t, 9, doc.Find("ul.strategies li").Length())

	// Scores are listed from the highest down.
	top := scoring.Top(results, 1)[0]
	first, _ := doc.Find("ul.scores li").First().Attr("data-bias")
	require.Equal(t, top.ID, first)

	var stored models.Assessment
	status, err := client.GetJSON(ctx, "/api/results/"+id, &stored)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, id, stored.ID)
	require.Equal(t, results, stored.Results)
	require.NotNil(t, stored.Personality)
	require.Equal(t, want.MatchPercentages, stored.Personality.MatchPercentages)
	require.Len(t, stored.Answers, bank.Len())
	require.GreaterOrEqual(t, stored.DurationSeconds, 0)

	// Progress is cleared and the home page links to the results.
	doc, err = client.GetDoc(ctx, "/")
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("a[href='"+resultsPath+"']:contains('See your latest results')").Length())
	require.Contains(t, doc.Find("a.button").Text(), "Start the assessment")

	// Another visitor can open the shared results.
	other, err := e2etest.NewClient(server.URL())
	require.NoError(t, err)
	doc, err = other.GetDoc(ctx, resultsPath)
	require.NoError(t, err)
	require.Equal(t, want.PrimaryType.Name, strings.TrimSpace(doc.Find("#primary-type").Text()))
}

func Test_application_assessmentIncomplete(t *testing.T) {
	server := startTestServer(t)
	client := server.Client()
	ctx := t.Context()

	answerQuestion(t, client, 0, "b")
	answerQuestion(t, client, 2, "c")

	resp, err := client.PostForm(ctx, "/assessment", "/assessment/reset", url.Values{})
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	answerQuestion(t, client, 0, "b")
	answerQuestion(t, client, 2, "c")
	doc := answerQuestion(t, client, 9, "d")
	require.Equal(t, 1, doc.Find("form[action='/assessment/complete']").Length())

	resp, err = client.PostForm(ctx, "/assessment/9", "/assessment/complete", url.Values{})
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, "/assessment/complete", e2etest.FinalPath(resp))

	doc, err = goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	var missing []string
	doc.Find("ul.missing li").Each(func(_ int, s *goquery.Selection) {
		missing = append(missing, strings.TrimSpace(s.Text()))
	})
	require.Equal(t, []string{
		"Question 2", "Question 4", "Question 5", "Question 6", "Question 7", "Question 8", "Question 9",
	}, missing)

	// The first unanswered question is the current one.
	doc, err = client.GetDoc(ctx, "/assessment")
	require.NoError(t, err)
	require.Contains(t, doc.Find(".progress").Text(), "Question 2 of 10, 3 answered")
}

func Test_application_assessmentResetClearsAnswers(t *testing.T) {
	server := startTestServer(t)
	client := server.Client()
	ctx := t.Context()

	answerQuestion(t, client, 0, "a")
	doc, err := client.SubmitForm(ctx, "/assessment/1", "/assessment/reset", url.Values{})
	require.NoError(t, err)
	require.Contains(t, doc.Find(".progress").Text(), "Question 1 of 10, 0 answered")
	require.Equal(t, 0, doc.Find("input[name=optionId][checked]").Length())
}

func Test_application_assessmentLastAnswerWins(t *testing.T) {
	server := startTestServer(t)
	client := server.Client()
	ctx := t.Context()

	answerQuestion(t, client, 0, "a")
	answerQuestion(t, client, 0, "d")

	doc, err := client.GetDoc(ctx, "/assessment/0")
	require.NoError(t, err)
	checked, ok := doc.Find("input[name=optionId][checked]").Attr("value")
	require.True(t, ok)
	require.Equal(t, "d", checked)
	require.Contains(t, doc.Find(".progress").Text(), "1 answered")
}

func Test_application_assessmentRejectsUnknownOption(t *testing.T) {
	server := startTestServer(t)
	client := server.Client()
	q, _ := questions.Default().At(0)

	resp, err := client.PostForm(t.Context(), "/assessment/0", "/assessment/answer", answerValues(0, q, "z"))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func Test_application_questionFragment(t *testing.T) {
	server := startTestServer(t)
	client := server.Client()

	resp, err := client.GetWithHeader(t.Context(), "/assessment/1", http.Header{"Hx-Request": {"true"}})
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotContains(t, string(body), "<html")
	require.Contains(t, string(body), `id="question"`)
	require.Contains(t, string(body), "Question 2 of 10")
}
