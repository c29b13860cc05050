// Package personality places a visitor on a two-axis grid from their bias scores and maps the position to one of
// four financial personality archetypes.
//
// The X axis is risk tolerance (negative is cautious, positive is bold) and the Y axis is decision style (negative is
// analytical, positive is intuitive). Both are clamped to [-10, 10].
package personality

import (
	"log/slog"
	"math"
	"slices"

	"github.com/myrjola/finbias/internal/errors"
	"github.com/myrjola/finbias/internal/models"
)

// ErrInvalidInput is returned when there are no bias results to classify.
var ErrInvalidInput = errors.NewSentinel("invalid classifier input")

// TypeID identifies a personality archetype.
type TypeID string

const (
	Guardian  TypeID = "guardian"
	Follower  TypeID = "follower"
	Optimizer TypeID = "optimizer"
	Visionary TypeID = "visionary"
)

// Type describes a personality archetype.
type Type = models.PersonalityType

const (
	axisLimit = 10.0

	lossAversionWeight   = 0.8
	overconfidenceWeight = 0.7
	anchoringWeight      = 0.6
	herdMentalityWeight  = 0.8
	recencyBiasWeight    = 0.5
)

// candidates is the declaration order used to break ties between equal match percentages.
var candidates = []TypeID{Guardian, Follower, Optimizer, Visionary}

var types = map[TypeID]Type{
	Guardian: {
		ID:   string(Guardian),
		Name: "The Guardian",
		Description: "You are cautious and security-focused, prioritizing the protection of your assets over " +
			"aggressive growth. This disciplined approach helps you avoid major losses, but might cause you to " +
			"miss some growth opportunities.",
		Strengths:  []string{"Risk-aware", "Disciplined", "Patient", "Detail-oriented"},
		Weaknesses: []string{"May miss growth opportunities", "Excessive worry", "Decision paralysis"},
		Color:      "#3b82f6",
		Icon:       "shield",
		StrengthsAdvice: "Continue to focus on security and risk management, but consider allocating a small " +
			"portion of your portfolio to higher-growth opportunities that you've thoroughly researched.",
		WeaknessesAdvice: "You might be leaving growth opportunities on the table. Consider dollar-cost averaging " +
			"into investments to reduce the anxiety of timing decisions.",
	},
	Follower: {
		ID:   string(Follower),
		Name: "The Follower",
		Description: "You are trend-sensitive and socially-influenced, often making decisions based on what others " +
			"are doing or recent market movements. This keeps you in tune with market sentiment, but might lead " +
			"to chasing trends too late.",
		Strengths:  []string{"Socially aware", "Adaptive", "Trend-conscious", "Collaborative"},
		Weaknesses: []string{"FOMO-driven decisions", "Bandwagon investing", "Recency-influenced"},
		Color:      "#10b981",
		Icon:       "users",
		StrengthsAdvice: "Your awareness of market trends and social dynamics can be valuable. Develop a system to " +
			"validate trends with objective data before investing.",
		WeaknessesAdvice: "Watch out for acting on FOMO (fear of missing out). Create a personal investment " +
			"checklist that any opportunity must pass, regardless of what others are doing.",
	},
	Optimizer: {
		ID:   string(Optimizer),
		Name: "The Optimizer",
		Description: "You are analytical and methodical, seeking the maximum return with calculated risks. Your " +
			"research-driven approach helps you find efficiency, but might lead to overthinking or analysis " +
			"paralysis.",
		Strengths:  []string{"Analytical", "Research-driven", "Logical", "Thorough"},
		Weaknesses: []string{"Overthinking", "Perfectionism", "Slow decision-making"},
		Color:      "#8b5cf6",
		Icon:       "graph",
		StrengthsAdvice: "Your analytical approach serves you well. Consider setting time limits for research to " +
			"avoid analysis paralysis, and develop rules for when to execute decisions.",
		WeaknessesAdvice: "Don't let the perfect be the enemy of the good. Set deadlines for making decisions to " +
			"avoid missing opportunities while searching for the perfect investment.",
	},
	Visionary: {
		ID:   string(Visionary),
		Name: "The Visionary",
		Description: "You are growth-focused and opportunity-seeking, willing to take bold risks for potentially " +
			"high returns. Your forward-thinking approach creates growth opportunities, but might expose you to " +
			"higher volatility.",
		Strengths:  []string{"Forward-thinking", "Growth-oriented", "Bold", "Adaptable"},
		Weaknesses: []string{"Potential overconfidence", "Volatility exposure", "Impatience"},
		Color:      "#ef4444",
		Icon:       "rocket",
		StrengthsAdvice: "Your ability to spot opportunities and take calculated risks is valuable. Consider " +
			"pairing with a financial advisor who can help provide structure and risk management to your approach.",
		WeaknessesAdvice: "Your confidence may sometimes become overconfidence. Implement a mandatory cooling-off " +
			"period for major financial decisions, and consider the downside scenarios.",
	},
}

func clone(t Type) Type {
	t.Strengths = slices.Clone(t.Strengths)
	t.Weaknesses = slices.Clone(t.Weaknesses)
	return t
}

// Types returns the four archetypes in declaration order.
func Types() []Type {
	all := make([]Type, len(candidates))
	for i, id := range candidates {
		all[i] = clone(types[id])
	}
	return all
}

// Lookup returns the archetype with the given id.
func Lookup(id TypeID) (Type, bool) {
	t, ok := types[id]
	if !ok {
		return Type{}, false
	}
	return clone(t), true
}

// Classify places the bias results on the personality grid.
//
// Categories missing from results contribute nothing. Later entries override earlier ones with the same id.
// Classify returns ErrInvalidInput when results is empty.
func Classify(results []models.BiasResult) (models.Classification, error) {
	if len(results) == 0 {
		return models.Classification{}, errors.Wrap(ErrInvalidInput, "no bias results",
			slog.Int("results", len(results)))
	}
	scores := make(map[string]float64, len(results))
	for _, r := range results {
		scores[r.ID] = float64(r.Score)
	}

	coordinates := Place(scores)
	primary := Quadrant(coordinates)
	percentages := MatchPercentages(coordinates)
	secondary := secondaryType(percentages, primary)

	matches := make(map[string]int, len(percentages))
	for id, p := range percentages {
		matches[string(id)] = p
	}
	return models.Classification{
		PrimaryType:      clone(types[primary]),
		SecondaryType:    clone(types[secondary]),
		MatchPercentages: matches,
		Coordinates:      coordinates,
	}, nil
}

// Place computes the grid position from bias scores keyed by category id.
func Place(scores map[string]float64) models.Coordinates {
	x := -scores["lossAversion"]*lossAversionWeight + scores["overconfidence"]*overconfidenceWeight
	y := -scores["anchoring"]*anchoringWeight +
		scores["herdMentality"]*herdMentalityWeight +
		scores["recencyBias"]*recencyBiasWeight
	return models.Coordinates{X: clamp(x), Y: clamp(y)}
}

func clamp(v float64) float64 {
	return math.Max(-axisLimit, math.Min(axisLimit, v))
}

// Quadrant maps a position to the primary archetype. A coordinate of exactly zero counts as non-negative, so the
// origin is a Visionary.
func Quadrant(c models.Coordinates) TypeID {
	switch {
	case c.X < 0 && c.Y < 0:
		return Guardian
	case c.X < 0:
		return Follower
	case c.Y < 0:
		return Optimizer
	default:
		return Visionary
	}
}

// MatchPercentages rates the position against every archetype as the product of the normalized axis factors,
// rounded to an integer percentage. The four values are independent and need not sum to 100.
func MatchPercentages(c models.Coordinates) map[TypeID]int {
	nx := (c.X + axisLimit) / (2 * axisLimit)
	ny := (c.Y + axisLimit) / (2 * axisLimit)
	percent := func(v float64) int {
		return int(math.Round(v * 100)) //nolint:mnd // percentage
	}
	return map[TypeID]int{
		Guardian:  percent((1 - nx) * (1 - ny)),
		Follower:  percent((1 - nx) * ny),
		Optimizer: percent(nx * (1 - ny)),
		Visionary: percent(nx * ny),
	}
}

// secondaryType picks the best match other than primary. The last candidate in declaration order wins ties.
func secondaryType(percentages map[TypeID]int, primary TypeID) TypeID {
	best := TypeID("")
	for _, id := range candidates {
		if id == primary {
			continue
		}
		if best == "" || percentages[id] >= percentages[best] {
			best = id
		}
	}
	return best
}
