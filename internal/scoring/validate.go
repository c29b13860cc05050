package scoring

import (
	"github.com/myrjola/finbias/internal/catalog"
	"github.com/myrjola/finbias/internal/questions"
)

// Mismatch is a category whose configured maximum is smaller than the raw total the question bank allows. Scores of
// such a category can exceed 10.
type Mismatch struct {
	CategoryID string `json:"categoryId"`
	Configured int    `json:"configured"`
	Achievable int    `json:"achievable"`
}

// Validate compares the catalog normalization constants with the question bank. It is meant for tooling and start-up
// checks, scoring does not depend on it.
func Validate(cat *catalog.Catalog, bank *questions.Bank) []Mismatch {
	var mismatches []Mismatch
	for _, category := range cat.All() {
		achievable := bank.MaxPoints(category.ID)
		if category.MaxPoints < achievable {
			mismatches = append(mismatches, Mismatch{
				CategoryID: category.ID,
				Configured: category.MaxPoints,
				Achievable: achievable,
			})
		}
	}
	return mismatches
}
