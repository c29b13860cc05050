package catalog

import "github.com/myrjola/finbias/internal/models"

// Severity is a coarse label for a bias score.
type Severity string

const (
	SeverityVeryLow  Severity = "Very Low"
	SeverityLow      Severity = "Low"
	SeverityModerate Severity = "Moderate"
	SeverityHigh     Severity = "High"
	SeverityVeryHigh Severity = "Very High"
)

// SeverityOf maps a normalized score to its severity label.
func SeverityOf(score int) Severity {
	switch {
	case score >= 8: //nolint:mnd // severity thresholds
		return SeverityVeryHigh
	case score >= 6: //nolint:mnd // severity thresholds
		return SeverityHigh
	case score >= 4: //nolint:mnd // severity thresholds
		return SeverityModerate
	case score >= 2: //nolint:mnd // severity thresholds
		return SeverityLow
	default:
		return SeverityVeryLow
	}
}

// Recommendation is a strategy annotated with the bias it counters.
type Recommendation struct {
	Strategy
	BiasID   string `json:"biasId"`
	BiasName string `json:"forBias"`
}

// StrategiesFor collects the strategies of the given categories in argument order. Unknown ids are skipped.
func (c *Catalog) StrategiesFor(ids ...string) []Recommendation {
	recommendations := make([]Recommendation, 0, len(ids)*3) //nolint:mnd // three strategies per category
	for _, id := range ids {
		category, ok := c.Get(id)
		if !ok {
			continue
		}
		for _, strategy := range category.Strategies {
			recommendations = append(recommendations, Recommendation{
				Strategy: strategy,
				BiasID:   category.ID,
				BiasName: category.Name,
			})
		}
	}
	return recommendations
}

// BlindSpotReport is the blind spot analysis of one scored bias.
type BlindSpotReport struct {
	BlindSpot
	BiasID   string   `json:"biasId"`
	BiasName string   `json:"biasName"`
	Score    int      `json:"biasScore"`
	Severity Severity `json:"severity"`
}

// BlindSpots reports on the first n results as given, so callers sort by score beforehand. Results for unknown
// categories are skipped.
func (c *Catalog) BlindSpots(results []models.BiasResult, n int) []BlindSpotReport {
	if n > len(results) {
		n = len(results)
	}
	if n < 0 {
		n = 0
	}
	reports := make([]BlindSpotReport, 0, n)
	for _, result := range results[:n] {
		category, ok := c.Get(result.ID)
		if !ok {
			continue
		}
		reports = append(reports, BlindSpotReport{
			BlindSpot: category.BlindSpot,
			BiasID:    category.ID,
			BiasName:  category.Name,
			Score:     result.Score,
			Severity:  SeverityOf(result.Score),
		})
	}
	return reports
}
