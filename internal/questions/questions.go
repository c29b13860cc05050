// Package questions holds the assessment question bank. Every option of a question carries a score vector that
// awards points to bias categories.
package questions

import (
	_ "embed"
	"log/slog"
	"maps"
	"sync"

	"github.com/myrjola/finbias/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultBankYAML []byte

// ErrInvalidBank is returned by Parse when the question data violates an invariant.
var ErrInvalidBank = errors.NewSentinel("invalid question bank")

const minOptions = 2

// Option is a choice of a question. Its ID is unique only within the question.
type Option struct {
	ID    string         `yaml:"id" json:"id"`
	Text  string         `yaml:"text" json:"text"`
	Score map[string]int `yaml:"score" json:"score"`
}

// Question is a multiple-choice prompt.
type Question struct {
	ID      int      `yaml:"id" json:"id"`
	Text    string   `yaml:"text" json:"text"`
	Options []Option `yaml:"options" json:"options"`
}

func (o Option) clone() Option {
	o.Score = maps.Clone(o.Score)
	return o
}

func (q Question) clone() Question {
	options := make([]Option, len(q.Options))
	for i, o := range q.Options {
		options[i] = o.clone()
	}
	q.Options = options
	return q
}

// Bank is an immutable, ordered set of questions. All accessors return copies.
type Bank struct {
	questions []Question
	index     map[int]int
}

type document struct {
	Questions []Question `yaml:"questions"`
}

// Parse reads a question bank from YAML data.
func Parse(data []byte) (*Bank, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.Join(ErrInvalidBank, err), "decode question bank")
	}
	return New(doc.Questions)
}

// New builds a bank from questions in presentation order.
func New(questions []Question) (*Bank, error) {
	if len(questions) == 0 {
		return nil, errors.Wrap(ErrInvalidBank, "no questions")
	}
	b := &Bank{
		questions: make([]Question, 0, len(questions)),
		index:     make(map[int]int, len(questions)),
	}
	for _, q := range questions {
		if _, ok := b.index[q.ID]; ok {
			return nil, errors.Wrap(ErrInvalidBank, "duplicate question id", slog.Int("question_id", q.ID))
		}
		if len(q.Options) < minOptions {
			return nil, errors.Wrap(ErrInvalidBank, "question needs at least two options",
				slog.Int("question_id", q.ID), slog.Int("options", len(q.Options)))
		}
		seen := make(map[string]struct{}, len(q.Options))
		for _, o := range q.Options {
			if o.ID == "" {
				return nil, errors.Wrap(ErrInvalidBank, "empty option id", slog.Int("question_id", q.ID))
			}
			if _, ok := seen[o.ID]; ok {
				return nil, errors.Wrap(ErrInvalidBank, "duplicate option id",
					slog.Int("question_id", q.ID), slog.String("option_id", o.ID))
			}
			seen[o.ID] = struct{}{}
			for category, points := range o.Score {
				if points < 0 {
					return nil, errors.Wrap(ErrInvalidBank, "negative points",
						slog.Int("question_id", q.ID),
						slog.String("option_id", o.ID),
						slog.String("category", category),
						slog.Int("points", points))
				}
			}
		}
		b.index[q.ID] = len(b.questions)
		b.questions = append(b.questions, q.clone())
	}
	return b, nil
}

var defaultBank = sync.OnceValue(func() *Bank {
	b, err := Parse(defaultBankYAML)
	if err != nil {
		panic(err)
	}
	return b
})

// Default returns the question bank embedded in the binary.
func Default() *Bank {
	return defaultBank()
}

// Question returns the question with the given id.
func (b *Bank) Question(id int) (Question, bool) {
	i, ok := b.index[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i].clone(), true
}

// Option resolves an option of a question.
func (b *Bank) Option(questionID int, optionID string) (Option, bool) {
	i, ok := b.index[questionID]
	if !ok {
		return Option{}, false
	}
	for _, o := range b.questions[i].Options {
		if o.ID == optionID {
			return o.clone(), true
		}
	}
	return Option{}, false
}

// At returns the question at the 0-based position in presentation order.
func (b *Bank) At(position int) (Question, bool) {
	if position < 0 || position >= len(b.questions) {
		return Question{}, false
	}
	return b.questions[position].clone(), true
}

// All returns the questions in presentation order.
func (b *Bank) All() []Question {
	all := make([]Question, len(b.questions))
	for i, q := range b.questions {
		all[i] = q.clone()
	}
	return all
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}

// MaxPoints sums, over all questions, the most points any single option awards to the category. It is the highest
// raw total a visitor can reach for the category by answering every question once.
func (b *Bank) MaxPoints(category string) int {
	total := 0
	for _, q := range b.questions {
		best := 0
		for _, o := range q.Options {
			best = max(best, o.Score[category])
		}
		total += best
	}
	return total
}
