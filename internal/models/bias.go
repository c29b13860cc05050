package models

import (
	"encoding/json"

	"github.com/myrjola/finbias/internal/errors"
)

// BiasResult is the normalized score of one bias category.
//
// Score is 0-10 for a consistent configuration but is not clamped.
type BiasResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Effects     string `json:"effects"`
	Score       int    `json:"score"`
}

// UnmarshalJSON accepts the legacy "bias" key as the category id when "id" is absent.
func (r *BiasResult) UnmarshalJSON(data []byte) error {
	type plain BiasResult
	var aux struct {
		plain
		Bias string `json:"bias"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return errors.Wrap(err, "unmarshal bias result")
	}
	*r = BiasResult(aux.plain)
	if r.ID == "" {
		r.ID = aux.Bias
	}
	return nil
}
