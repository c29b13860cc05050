package models

import "time"

// Answer is a single option chosen by the visitor for a question.
type Answer struct {
	QuestionID       int       `json:"questionId"`
	SelectedOptionID string    `json:"selectedOptionId"`
	Timestamp        time.Time `json:"timestamp"`
}
