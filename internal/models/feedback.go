package models

import "time"

// Feedback is a visitor's rating of their results page.
type Feedback struct {
	ID           int64     `json:"id"`
	AssessmentID string    `json:"assessmentId"`
	Rating       int       `json:"rating"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ContactMessage is a message sent through the contact form.
type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
