// Package catalog holds the static registry of financial bias categories together with their debiasing strategies
// and blind spot analyses.
package catalog

import (
	_ "embed"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/myrjola/finbias/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// ErrInvalidCatalog is returned by Parse when the catalog data violates an invariant.
var ErrInvalidCatalog = errors.NewSentinel("invalid bias catalog")

// Strategy is a debiasing tactic for a bias category.
type Strategy struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// BlindSpot is the long-form analysis shown for the visitor's most pronounced biases.
type BlindSpot struct {
	ShortDescription string `yaml:"short_description" json:"shortDescription"`
	DetailedAnalysis string `yaml:"detailed_analysis" json:"detailedAnalysis"`
	FinancialImpact  string `yaml:"financial_impact" json:"financialImpact"`
	RealWorldExample string `yaml:"real_world_example" json:"realWorldExample"`
	Statistics       string `yaml:"statistics" json:"statistics"`
}

// BiasCategory is one measured bias dimension.
//
// MaxPoints is the normalization constant: the raw points that map to a score of 10.
type BiasCategory struct {
	ID          string     `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	Effects     string     `yaml:"effects" json:"effects"`
	MaxPoints   int        `yaml:"max_points" json:"maxPoints"`
	BlindSpot   BlindSpot  `yaml:"blind_spot" json:"blindSpot"`
	Strategies  []Strategy `yaml:"strategies" json:"strategies"`
}

func (c BiasCategory) clone() BiasCategory {
	c.Strategies = slices.Clone(c.Strategies)
	return c
}

// Catalog is an immutable, ordered registry of bias categories. All accessors return copies.
type Catalog struct {
	categories []BiasCategory
	index      map[string]int
}

type document struct {
	Categories []BiasCategory `yaml:"categories"`
}

// Parse reads a catalog from YAML data.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.Join(ErrInvalidCatalog, err), "decode catalog")
	}
	return New(doc.Categories)
}

// New builds a catalog from categories in display order.
func New(categories []BiasCategory) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, errors.Wrap(ErrInvalidCatalog, "no categories")
	}
	c := &Catalog{
		categories: make([]BiasCategory, 0, len(categories)),
		index:      make(map[string]int, len(categories)),
	}
	for _, category := range categories {
		id := strings.TrimSpace(category.ID)
		switch {
		case id == "":
			return nil, errors.Wrap(ErrInvalidCatalog, "empty category id", slog.String("name", category.Name))
		case category.MaxPoints <= 0:
			return nil, errors.Wrap(ErrInvalidCatalog, "max points must be positive",
				slog.String("category", id), slog.Int("max_points", category.MaxPoints))
		case len(category.Strategies) == 0:
			return nil, errors.Wrap(ErrInvalidCatalog, "category without strategies", slog.String("category", id))
		}
		if _, ok := c.index[id]; ok {
			return nil, errors.Wrap(ErrInvalidCatalog, "duplicate category id", slog.String("category", id))
		}
		category.ID = id
		c.index[id] = len(c.categories)
		c.categories = append(c.categories, category.clone())
	}
	return c, nil
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic(err)
	}
	return c
})

// Default returns the catalog embedded in the binary. It is parsed once and shared, which is safe because a
// Catalog is never mutated.
func Default() *Catalog {
	return defaultCatalog()
}

// Get returns the category with the given id. The boolean reports whether it exists.
func (c *Catalog) Get(id string) (BiasCategory, bool) {
	i, ok := c.index[id]
	if !ok {
		return BiasCategory{}, false
	}
	return c.categories[i].clone(), true
}

// All returns every category in catalog order.
func (c *Catalog) All() []BiasCategory {
	all := make([]BiasCategory, len(c.categories))
	for i, category := range c.categories {
		all[i] = category.clone()
	}
	return all
}

// IDs returns the category ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.categories))
	for i, category := range c.categories {
		ids[i] = category.ID
	}
	return ids
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.categories)
}

// Strategies returns the debiasing strategies of a category. Unknown ids yield an empty slice.
func (c *Catalog) Strategies(id string) []Strategy {
	i, ok := c.index[id]
	if !ok {
		return []Strategy{}
	}
	return slices.Clone(c.categories[i].Strategies)
}
