package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/stackqa/internal/domain"
	"github.com/listenupapp/stackqa/internal/errors"
)

func sampleSeed() Seed {
	return Seed{
		Tags: []domain.Tag{
			{ID: "tag-1", Name: "react"},
			{ID: "tag-2", Name: "android"},
		},
		Answers: []domain.Answer{
			{ID: "ans-1", Text: "old", AnsweredBy: "ben", PostedAt: epoch.Add(-3 * time.Hour)},
			{ID: "ans-2", Text: "new", AnsweredBy: "cy", PostedAt: epoch.Add(-1 * time.Hour)},
			{ID: "ans-7", Text: "other", AnsweredBy: "dee", PostedAt: epoch.Add(-2 * time.Hour)},
		},
		Questions: []domain.Question{
			{
				ID: "q-1", Title: "Hooks", Text: "state", TagIDs: []string{"tag-1", "tag-1"},
				AskedBy: "ana", AskedAt: epoch.Add(-24 * time.Hour),
				AnswerIDs: []string{"ans-2", "ans-1"}, Views: 4,
			},
			{
				ID: "q-5", Title: "Gradle", Text: "sync", TagIDs: []string{"tag-2"},
				AskedBy: "ben", AskedAt: epoch.Add(-12 * time.Hour),
				AnswerIDs: []string{"ans-7"},
			},
			{
				ID: "q-2", Title: "Empty", Text: "none",
				AskedBy: "cy", AskedAt: epoch.Add(-6 * time.Hour),
			},
		},
	}
}

func TestNew_Seed(t *testing.T) {
	r := setupRepo(t, sampleSeed())

	q, ok := r.GetQuestionByID("q-1")
	require.True(t, ok)
	assert.Equal(t, []string{"tag-1"}, q.TagIDs, "duplicate tag refs collapse")
	assert.Equal(t, 4, q.Views)
	require.NotNil(t, q.LastAnswerAt)
	assert.Equal(t, epoch.Add(-1*time.Hour), *q.LastAnswerAt)

	answers := r.GetQuestionAnswers(q)
	assert.Equal(t, "ans-2", answers[0].ID)

	empty, _ := r.GetQuestionByID("q-2")
	assert.NotNil(t, empty.AnswerIDs)
	assert.Nil(t, empty.LastAnswerAt)
}

func TestNew_SeedIgnoresProvidedLastAnswerAt(t *testing.T) {
	seed := sampleSeed()
	bogus := epoch.Add(100 * time.Hour)
	seed.Questions[2].LastAnswerAt = &bogus

	r := setupRepo(t, seed)
	q, _ := r.GetQuestionByID("q-2")
	assert.Nil(t, q.LastAnswerAt)
}

func TestNew_SeedNonContiguousIDs(t *testing.T) {
	r := setupRepo(t, sampleSeed())

	// three questions seeded as q-1, q-5, q-2: numbering resumes after the count
	assert.Equal(t, "q-4", r.AddQuestion("new", "body", nil, "ana"))
	assert.Equal(t, "q-6", r.AddQuestion("newer", "body", nil, "ana"))
	assert.Equal(t, "tag-3", r.AddTag("go"))
	assert.Equal(t, "tag-1", r.AddTag("react"))

	// ans-4 is free, ans-7 is skipped later
	assert.Equal(t, "ans-4", r.AddAnswer("q-2", "x", "ben"))
	assert.Equal(t, "ans-5", r.AddAnswer("q-2", "y", "ben"))
	assert.Equal(t, "ans-6", r.AddAnswer("q-2", "z", "ben"))
	assert.Equal(t, "ans-8", r.AddAnswer("q-2", "w", "ben"))
}

func TestNew_SeedValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Seed)
	}{
		{"duplicate tag id", func(s *Seed) { s.Tags = append(s.Tags, domain.Tag{ID: "tag-1", Name: "x"}) }},
		{"duplicate tag name", func(s *Seed) { s.Tags = append(s.Tags, domain.Tag{ID: "tag-9", Name: "react"}) }},
		{"tag without id", func(s *Seed) { s.Tags = append(s.Tags, domain.Tag{Name: "x"}) }},
		{"duplicate answer id", func(s *Seed) { s.Answers = append(s.Answers, domain.Answer{ID: "ans-1"}) }},
		{"answer without id", func(s *Seed) { s.Answers = append(s.Answers, domain.Answer{Text: "x"}) }},
		{"duplicate question id", func(s *Seed) { s.Questions = append(s.Questions, domain.Question{ID: "q-1"}) }},
		{"question without id", func(s *Seed) { s.Questions = append(s.Questions, domain.Question{Title: "x"}) }},
		{"unknown tag", func(s *Seed) { s.Questions[0].TagIDs = []string{"tag-404"} }},
		{"unknown answer", func(s *Seed) { s.Questions[0].AnswerIDs = []string{"ans-404"} }},
		{"shared answer", func(s *Seed) { s.Questions[2].AnswerIDs = []string{"ans-1"} }},
		{"negative views", func(s *Seed) { s.Questions[1].Views = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := sampleSeed()
			tt.mutate(&seed)

			_, err := New(seed, Options{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrValidation))
		})
	}
}

func TestNew_SeedCopiedNotAliased(t *testing.T) {
	seed := sampleSeed()
	r := setupRepo(t, seed)

	seed.Questions[0].Title = "mutated"
	seed.Questions[0].AnswerIDs[0] = "ans-7"

	q, _ := r.GetQuestionByID("q-1")
	assert.Equal(t, "Hooks", q.Title)
	assert.Equal(t, []string{"ans-2", "ans-1"}, q.AnswerIDs)
}
