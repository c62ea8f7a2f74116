package domain

import "time"

// Answer is a reply posted to a question. Answers are immutable once
// created; the owning question holds the reference, not the answer.
type Answer struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AnsweredBy string    `json:"answered_by"`
	PostedAt   time.Time `json:"posted_at"`
}
