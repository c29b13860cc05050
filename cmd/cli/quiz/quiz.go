package quiz

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/myrjola/finbias/internal/catalog"
	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/internal/models"
	"github.com/myrjola/finbias/internal/personality"
	"github.com/myrjola/finbias/internal/questions"
	"github.com/myrjola/finbias/internal/scoring"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "quiz",
	Title: "Assessment",
}

func init() {
	Questions.Flags().Bool("json", false, "print the question bank as JSON")
	Score.Flags().Bool("derived-maxima", false, "normalize by the maximum the question bank allows")
}

var Questions = &cobra.Command{
	Use:     "questions",
	GroupID: "quiz",
	Short:   "List the questions",
	Long:    "Lists the assessment questions with their options and the points each option awards",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		asJSON, err := cmd.Flags().GetBool("json")
		if err != nil {
			return errors.Wrap(err, "json flag")
		}
		bank := questions.Default()
		out := cmd.OutOrStdout()
		if asJSON {
			return writeJSON(out, bank.All())
		}
		for i, q := range bank.All() {
			_, _ = fmt.Fprintf(out, "%d. %s\n", i+1, q.Text)
			for _, o := range q.Options {
				_, _ = fmt.Fprintf(out, "   %s) %s %s\n", o.ID, o.Text, formatPoints(o.Score))
			}
		}
		return nil
	},
}

func formatPoints(score map[string]int) string {
	var parts []string
	for _, id := range catalog.Default().IDs() {
		if points, ok := score[id]; ok {
			parts = append(parts, fmt.Sprintf("%s+%d", id, points))
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

type scoreOutput struct {
	Results          []models.BiasResult    `json:"results"`
	Personality      *models.Classification `json:"personality,omitempty"`
	PersonalityError string                 `json:"personalityError,omitempty"`
	Skipped          []scoring.Skipped      `json:"skipped,omitempty"`
}

var Score = &cobra.Command{
	Use:     "score [answers.json]",
	GroupID: "quiz",
	Short:   "Score answers",
	Long: `Scores a JSON array of answers like [{"questionId":1,"selectedOptionId":"b"}] and classifies the
personality. Reads standard input when no file or "-" is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		derived, err := cmd.Flags().GetBool("derived-maxima")
		if err != nil {
			return errors.Wrap(err, "derived-maxima flag")
		}
		var data []byte
		if len(args) == 0 || args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return errors.Wrap(err, "read answers")
		}
		var answers []models.Answer
		if err = json.Unmarshal(data, &answers); err != nil {
			return errors.Wrap(err, "parse answers")
		}

		var opts []scoring.Option
		if derived {
			opts = append(opts, scoring.WithDerivedMaxima())
		}
		card := scoring.New(catalog.Default(), questions.Default(), opts...).Scorecard(answers)
		output := scoreOutput{
			Results:          card.Results,
			Personality:      nil,
			PersonalityError: "",
			Skipped:          card.Skipped,
		}
		if classification, classifyErr := personality.Classify(card.Results); classifyErr != nil {
			output.PersonalityError = classifyErr.Error()
		} else {
			output.Personality = &classification
		}
		return writeJSON(cmd.OutOrStdout(), output)
	},
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return errors.Wrap(err, "encode json")
	}
	return nil
}
