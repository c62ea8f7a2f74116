// Package domain holds the question, answer and tag records of the knowledge base.
package domain

import (
	"slices"
	"time"
)

// Question is the aggregate root of the knowledge base.
// Answers and tags are reached through their ids.
type Question struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Text    string    `json:"text"`
	TagIDs  []string  `json:"tag_ids"`  // Insertion order, no duplicates
	AskedBy string    `json:"asked_by"` // Display name of the author
	AskedAt time.Time `json:"asked_at"`

	// AnswerIDs is append-only; insertion order is chronological.
	AnswerIDs []string `json:"answer_ids"`
	Views     int      `json:"views"`

	// LastAnswerAt is the newest PostedAt among the referenced answers,
	// nil while the question has none.
	LastAnswerAt *time.Time `json:"last_answer_at,omitempty"`
}

// AnswerCount returns the number of answers attached to the question.
func (q *Question) AnswerCount() int {
	return len(q.AnswerIDs)
}

// HasTag reports whether the question references the given tag.
func (q *Question) HasTag(tagID string) bool {
	return slices.Contains(q.TagIDs, tagID)
}

// HasAnswer reports whether the question references the given answer.
func (q *Question) HasAnswer(answerID string) bool {
	return slices.Contains(q.AnswerIDs, answerID)
}

// AddAnswer appends an answer id and advances LastAnswerAt.
// Adding an id that is already present is a no-op.
func (q *Question) AddAnswer(answerID string, postedAt time.Time) {
	if q.HasAnswer(answerID) {
		return
	}
	q.AnswerIDs = append(q.AnswerIDs, answerID)
	q.ObserveAnswerAt(postedAt)
}

// ObserveAnswerAt moves LastAnswerAt forward if t is newer. It never moves it back.
func (q *Question) ObserveAnswerAt(t time.Time) {
	if q.LastAnswerAt == nil || t.After(*q.LastAnswerAt) {
		at := t
		q.LastAnswerAt = &at
	}
}

// AddView increments the view counter.
func (q *Question) AddView() {
	q.Views++
}

// LastActivity returns LastAnswerAt, or the Unix epoch when unanswered.
func (q *Question) LastActivity() time.Time {
	if q.LastAnswerAt == nil {
		return time.Unix(0, 0).UTC()
	}
	return *q.LastAnswerAt
}

// Clone returns a deep copy that shares no slices or pointers with q.
func (q *Question) Clone() Question {
	c := *q
	c.TagIDs = slices.Clone(q.TagIDs)
	c.AnswerIDs = slices.Clone(q.AnswerIDs)
	if q.LastAnswerAt != nil {
		at := *q.LastAnswerAt
		c.LastAnswerAt = &at
	}
	return c
}
