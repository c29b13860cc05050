package models

import "time"

// Assessment is a completed questionnaire persisted under a shareable id.
type Assessment struct {
	ID              string          `json:"id"`
	Answers         []Answer        `json:"answers"`
	Results         []BiasResult    `json:"results"`
	Personality     *Classification `json:"personality,omitempty"`
	DurationSeconds int             `json:"durationSeconds"`
	CompletedAt     time.Time       `json:"completedAt"`
}
