// Package search provides relevance-ranked full-text search over questions
// using an in-memory Bleve index.
//
// The index is secondary to the repository: it is built from the seeded
// repository on startup and then follows every question write through
// repository.Indexer.
package search

import (
	"strings"

	"github.com/listenupapp/stackqa/internal/domain"
)

// QuestionDocument is the flattened form of a question stored in the index.
//
// Tag names and answer text are denormalized into the document so a single
// query covers the whole thread.
type QuestionDocument struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Text        string   `json:"text"`
	AskedBy     string   `json:"asked_by"`
	Tags        []string `json:"tags,omitempty"` // Lower-cased tag names
	Answers     []string `json:"answers,omitempty"`
	AnswerCount int      `json:"answer_count"`
	Views       int      `json:"views"`
	AskedAt     int64    `json:"asked_at"` // Unix millis
}

// ToMap converts the document to a map whose keys match the index mapping.
func (d *QuestionDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":           d.ID,
		"title":        d.Title,
		"text":         d.Text,
		"asked_by":     d.AskedBy,
		"answer_count": d.AnswerCount,
		"views":        d.Views,
		"asked_at":     d.AskedAt,
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	if len(d.Answers) > 0 {
		m["answers"] = d.Answers
	}
	return m
}

// QuestionToDocument builds the index document for q. The caller resolves
// the question's tags and answers.
func QuestionToDocument(q domain.Question, tags []domain.Tag, answers []domain.Answer) *QuestionDocument {
	doc := &QuestionDocument{
		ID:          q.ID,
		Title:       q.Title,
		Text:        q.Text,
		AskedBy:     q.AskedBy,
		AnswerCount: q.AnswerCount(),
		Views:       q.Views,
		AskedAt:     q.AskedAt.UnixMilli(),
	}
	for _, t := range tags {
		doc.Tags = append(doc.Tags, strings.ToLower(t.Name))
	}
	for _, a := range answers {
		doc.Answers = append(doc.Answers, a.Text)
	}
	return doc
}
