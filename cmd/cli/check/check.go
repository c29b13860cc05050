package check

import (
	"fmt"
	"log/slog"

	"github.com/myrjola/finbias/internal/catalog"
	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/internal/questions"
	"github.com/myrjola/finbias/internal/scoring"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "check",
	Title: "Consistency checks",
}

// ErrMismatch is returned by validate --strict when a category can exceed a score of 10.
var ErrMismatch = errors.NewSentinel("bias maxima below achievable totals")

func init() {
	Validate.Flags().Bool("strict", false, "fail when a configured maximum is below the achievable total")
}

var Validate = &cobra.Command{
	Use:     "validate",
	GroupID: "check",
	Short:   "Compare bias maxima with the question bank",
	Long: "Reports the bias categories whose configured maximum points are below the total the question bank " +
		"allows. Scores of those categories can exceed 10.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		strict, err := cmd.Flags().GetBool("strict")
		if err != nil {
			return errors.Wrap(err, "strict flag")
		}
		cat := catalog.Default()
		bank := questions.Default()
		out := cmd.OutOrStdout()
		mismatches := scoring.Validate(cat, bank)
		for _, category := range cat.All() {
			_, _ = fmt.Fprintf(out, "%-15s configured %2d achievable %2d\n",
				category.ID, category.MaxPoints, bank.MaxPoints(category.ID))
		}
		if len(mismatches) == 0 {
			_, _ = fmt.Fprintln(out, "all maxima cover the question bank")
			return nil
		}
		for _, m := range mismatches {
			_, _ = fmt.Fprintf(out, "%s: configured %d < achievable %d\n", m.CategoryID, m.Configured, m.Achievable)
		}
		if strict {
			return errors.Wrap(ErrMismatch, "validate", slog.Int("mismatches", len(mismatches)))
		}
		return nil
	},
}
