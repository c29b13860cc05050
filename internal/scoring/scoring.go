// Package scoring turns assessment answers into normalized bias scores.
//
// An Engine is immutable after construction and safe for concurrent use. Scoring is a pure function of the answers:
// it performs no I/O and never fails. Answers that reference unknown questions or options contribute nothing.
package scoring

import (
	"math"
	"slices"

	"github.com/myrjola/finbias/internal/catalog"
	"github.com/myrjola/finbias/internal/models"
	"github.com/myrjola/finbias/internal/questions"
)

const scale = 10

// SkipReason tells why an answer did not contribute to the scores.
type SkipReason string

const (
	SkipUnknownQuestion SkipReason = "unknown question"
	SkipUnknownOption   SkipReason = "unknown option"
	// SkipSuperseded marks an answer replaced by a later answer to the same question.
	SkipSuperseded SkipReason = "superseded"
)

// Skipped is an answer that was ignored during scoring.
type Skipped struct {
	Answer models.Answer `json:"answer"`
	Reason SkipReason    `json:"reason"`
}

// Scorecard is the full outcome of a scoring run.
type Scorecard struct {
	// Results holds one entry per catalog category in catalog order.
	Results []models.BiasResult `json:"results"`
	// Raw holds the accumulated points per category before normalization.
	Raw map[string]int `json:"raw"`
	// Skipped lists the answers that contributed nothing, in input order.
	Skipped []Skipped `json:"skipped"`
}

// Engine scores answers against a catalog and a question bank.
type Engine struct {
	catalog *catalog.Catalog
	bank    *questions.Bank
	maxima  map[string]int
}

// Option configures an Engine.
type Option func(*Engine)

// WithDerivedMaxima normalizes each category by the highest raw total the question bank allows instead of the
// constant configured in the catalog.
func WithDerivedMaxima() Option {
	return func(e *Engine) {
		for _, id := range e.catalog.IDs() {
			e.maxima[id] = e.bank.MaxPoints(id)
		}
	}
}

// New creates an Engine. By default each category is normalized by its catalog MaxPoints.
func New(cat *catalog.Catalog, bank *questions.Bank, opts ...Option) *Engine {
	e := &Engine{
		catalog: cat,
		bank:    bank,
		maxima:  make(map[string]int, cat.Len()),
	}
	for _, category := range cat.All() {
		e.maxima[category.ID] = category.MaxPoints
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxPoints returns the normalization constant the engine uses for a category.
func (e *Engine) MaxPoints(categoryID string) int {
	return e.maxima[categoryID]
}

// Score returns one BiasResult per catalog category in catalog order.
//
// When several answers share a question id, only the last one counts.
func (e *Engine) Score(answers []models.Answer) []models.BiasResult {
	return e.Scorecard(answers).Results
}

// Scorecard scores the answers like Score and also reports the raw totals and the ignored answers.
func (e *Engine) Scorecard(answers []models.Answer) Scorecard {
	categories := e.catalog.All()
	raw := make(map[string]int, len(categories))
	for _, category := range categories {
		raw[category.ID] = 0
	}

	// Unresolvable answers are dropped before deduplication so they never replace a valid answer.
	resolved := make([]questions.Option, len(answers))
	reasons := make([]SkipReason, len(answers))
	last := make(map[int]int, len(answers))
	for i, answer := range answers {
		if _, ok := e.bank.Question(answer.QuestionID); !ok {
			reasons[i] = SkipUnknownQuestion
			continue
		}
		option, ok := e.bank.Option(answer.QuestionID, answer.SelectedOptionID)
		if !ok {
			reasons[i] = SkipUnknownOption
			continue
		}
		resolved[i] = option
		last[answer.QuestionID] = i
	}

	skipped := make([]Skipped, 0)
	for i, answer := range answers {
		if reasons[i] != "" {
			skipped = append(skipped, Skipped{Answer: answer, Reason: reasons[i]})
			continue
		}
		if last[answer.QuestionID] != i {
			skipped = append(skipped, Skipped{Answer: answer, Reason: SkipSuperseded})
			continue
		}
		for categoryID, points := range resolved[i].Score {
			if _, known := raw[categoryID]; known {
				raw[categoryID] += points
			}
		}
	}

	results := make([]models.BiasResult, len(categories))
	for i, category := range categories {
		results[i] = models.BiasResult{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
			Effects:     category.Effects,
			Score:       normalize(raw[category.ID], e.maxima[category.ID]),
		}
	}

	return Scorecard{
		Results: results,
		Raw:     raw,
		Skipped: skipped,
	}
}

// normalize rescales raw points to the 0-10 scale rounding half away from zero. The result is not clamped, so a
// maximum smaller than the achievable raw total yields scores above 10.
func normalize(raw, maxPoints int) int {
	if maxPoints <= 0 {
		return 0
	}
	return int(math.Round(float64(raw) / float64(maxPoints) * scale))
}

// Top returns the n highest scoring results. Equal scores keep their input order. The input is not modified.
func Top(results []models.BiasResult, n int) []models.BiasResult {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b models.BiasResult) int {
		return b.Score - a.Score
	})
	n = max(0, min(n, len(sorted)))
	return sorted[:n]
}
