// Package decisiontool annotates investment options with corrections for the visitor's measured biases.
package decisiontool

import (
	"log/slog"
	"math"
	"strings"

	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/internal/models"
)

// ErrInvalidInvestment is returned by Validate for options that cannot be corrected.
var ErrInvalidInvestment = errors.NewSentinel("invalid investment option")

const (
	minRisk = 1
	maxRisk = 10

	// returnVariance is the share of the expected return an estimate may be off by.
	returnVariance = 0.3

	historicalContext  = "Consider that the long-term average market return is around 7-10% annually."
	confidenceNote     = "Consider that your return estimates may be off by 30% or more in either direction."
	popularityWarning  = "This investment is currently popular. Ensure you're not investing just because others are."
	alternativeMetrics = "Consider evaluating this investment using multiple metrics, not just the expected return."
)

// Investment is an option the visitor is weighing.
type Investment struct {
	Name           string  `json:"name"`
	Risk           int     `json:"risk"`
	ExpectedReturn float64 `json:"expectedReturn"`
	IsPopular      bool    `json:"isPopular"`
}

// Corrected is an Investment with the corrections of the visitor's biases applied. Fields of biases that were not
// measured stay empty.
type Corrected struct {
	Investment
	PerceivedRisk      *int     `json:"perceivedRisk,omitempty"`
	AdjustedReturn     *float64 `json:"adjustedReturn,omitempty"`
	HistoricalContext  string   `json:"historicalContext,omitempty"`
	ReturnRangeLow     *float64 `json:"returnRangeLow,omitempty"`
	ReturnRangeHigh    *float64 `json:"returnRangeHigh,omitempty"`
	ConfidenceNote     string   `json:"confidenceNote,omitempty"`
	PopularityWarning  string   `json:"popularityWarning,omitempty"`
	AlternativeMetrics string   `json:"alternativeMetrics,omitempty"`
}

// Validate checks that every option is named and rated on the 1-10 risk scale.
func Validate(options []Investment) error {
	if len(options) == 0 {
		return errors.Wrap(ErrInvalidInvestment, "no investment options")
	}
	var errs []error
	for i, o := range options {
		if strings.TrimSpace(o.Name) == "" {
			errs = append(errs, errors.Wrap(ErrInvalidInvestment, "missing name", slog.Int("index", i)))
		}
		if o.Risk < minRisk || o.Risk > maxRisk {
			errs = append(errs, errors.Wrap(ErrInvalidInvestment, "risk out of range",
				slog.Int("index", i), slog.Int("risk", o.Risk)))
		}
	}
	return errors.Join(errs...)
}

// Correct applies the corrections of each bias in results to every option. The options are not modified.
func Correct(options []Investment, results []models.BiasResult) []Corrected {
	corrected := make([]Corrected, len(options))
	for i, o := range options {
		corrected[i] = Corrected{Investment: o} //nolint:exhaustruct // corrections are filled per bias.
	}
	for _, bias := range results {
		for i := range corrected {
			apply(&corrected[i], bias)
		}
	}
	return corrected
}

func apply(c *Corrected, bias models.BiasResult) {
	switch bias.ID {
	case "lossAversion":
		// Loss averse visitors overrate risk, scale it down by ten percent per score point.
		factor := 1 - float64(bias.Score)*0.1 //nolint:mnd // ten percent per point
		perceived := max(minRisk, int(math.Round(float64(c.Risk)*factor)))
		c.PerceivedRisk = &perceived
	case "recencyBias":
		adjusted := c.ExpectedReturn
		c.AdjustedReturn = &adjusted
		c.HistoricalContext = historicalContext
	case "overconfidence":
		spread := c.ExpectedReturn * returnVariance
		low := roundTenth(c.ExpectedReturn - spread)
		high := roundTenth(c.ExpectedReturn + spread)
		c.ReturnRangeLow = &low
		c.ReturnRangeHigh = &high
		c.ConfidenceNote = confidenceNote
	case "herdMentality":
		if c.IsPopular {
			c.PopularityWarning = popularityWarning
		}
	case "anchoring":
		c.AlternativeMetrics = alternativeMetrics
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10 //nolint:mnd // one decimal
}
