package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/myrjola/finbias/internal/e2etest"
	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/internal/logging"
	"github.com/myrjola/finbias/internal/questions"
)

// TestAssessment answers every question, completes the assessment and checks that the results page loads.
func TestAssessment(ctx context.Context, client *e2etest.Client) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second) //nolint:mnd // 30 seconds
	defer cancel()

	for i, q := range questions.Default().All() {
		path := "/assessment/" + strconv.Itoa(i)
		values := url.Values{
			"index":      {strconv.Itoa(i)},
			"questionId": {strconv.Itoa(q.ID)},
			"optionId":   {q.Options[0].ID},
		}
		if _, err := client.SubmitForm(ctx, path, "/assessment/answer", values); err != nil {
			return "", errors.Wrap(err, "answer question", slog.Int("question_id", q.ID))
		}
	}

	resp, err := client.PostForm(ctx, "/assessment/"+strconv.Itoa(questions.Default().Len()-1),
		"/assessment/complete", url.Values{})
	if err != nil {
		return "", errors.Wrap(err, "complete assessment")
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.New("unexpected status completing assessment", slog.Int("status", resp.StatusCode))
	}
	resultsPath := e2etest.FinalPath(resp)
	if !strings.HasPrefix(resultsPath, "/results/") {
		return "", errors.New("completion did not redirect to results", slog.String("path", resultsPath))
	}
	doc, err := client.GetDoc(ctx, resultsPath)
	if err != nil {
		return "", errors.Wrap(err, "get results")
	}
	if doc.Find("#primary-type").Length() != 1 {
		return "", errors.New("results page has no personality", slog.String("path", resultsPath))
	}
	return resultsPath, nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		baseURL  = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", baseURL))

	if client, err = e2etest.NewClient(baseURL); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "server not ready", errors.SlogError(err))
		os.Exit(1)
	}
	var resultsPath string
	if resultsPath, err = TestAssessment(ctx, client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing assessment", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌", slog.String("results", resultsPath))
	os.Exit(0)
}
