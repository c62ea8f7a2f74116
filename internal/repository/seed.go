package repository

import (
	"slices"

	"github.com/listenupapp/stackqa/internal/domain"
	"github.com/listenupapp/stackqa/internal/errors"
)

// Seed is the payload a repository starts from.
//
// Ids must be unique per collection, every tag and answer a question
// references must be present, and an answer belongs to at most one question.
// A question's LastAnswerAt is recomputed from its answers; any value in the
// seed is ignored.
type Seed struct {
	Tags      []domain.Tag
	Answers   []domain.Answer
	Questions []domain.Question
}

// load validates seed and copies it into r.
func (r *Repository) load(seed Seed) error {
	for _, t := range seed.Tags {
		if t.ID == "" {
			return errors.Validationf("seed tag %q has no id", t.Name)
		}
		if r.tagExists(t.ID) {
			return errors.Validationf("seed tag id %s is duplicated", t.ID)
		}
		if _, ok := r.tagByName[t.Name]; ok {
			return errors.Validationf("seed tag name %q is duplicated", t.Name)
		}
		r.tagByID[t.ID] = len(r.tags)
		r.tags = append(r.tags, t)
		r.tagByName[t.Name] = t.ID
	}

	for _, a := range seed.Answers {
		if a.ID == "" {
			return errors.Validation("seed answer has no id")
		}
		if r.answerExists(a.ID) {
			return errors.Validationf("seed answer id %s is duplicated", a.ID)
		}
		r.answerByID[a.ID] = len(r.answers)
		r.answers = append(r.answers, a)
	}

	owner := make(map[string]string, len(seed.Answers))
	for _, in := range seed.Questions {
		if in.ID == "" {
			return errors.Validationf("seed question %q has no id", in.Title)
		}
		if r.questionExists(in.ID) {
			return errors.Validationf("seed question id %s is duplicated", in.ID)
		}
		if in.Views < 0 {
			return errors.Validationf("seed question %s has negative views", in.ID)
		}

		q := &domain.Question{
			ID:        in.ID,
			Title:     in.Title,
			Text:      in.Text,
			TagIDs:    make([]string, 0, len(in.TagIDs)),
			AskedBy:   in.AskedBy,
			AskedAt:   in.AskedAt,
			AnswerIDs: make([]string, 0, len(in.AnswerIDs)),
			Views:     in.Views,
		}

		for _, tid := range in.TagIDs {
			if !r.tagExists(tid) {
				return errors.Validationf("seed question %s references unknown tag %s", in.ID, tid)
			}
			if !slices.Contains(q.TagIDs, tid) {
				q.TagIDs = append(q.TagIDs, tid)
			}
		}

		for _, aid := range in.AnswerIDs {
			i, ok := r.answerByID[aid]
			if !ok {
				return errors.Validationf("seed question %s references unknown answer %s", in.ID, aid)
			}
			if prev, taken := owner[aid]; taken && prev != in.ID {
				return errors.Validationf("seed answer %s belongs to both %s and %s", aid, prev, in.ID)
			}
			owner[aid] = in.ID
			q.AddAnswer(aid, r.answers[i].PostedAt)
		}

		r.questions = append(r.questions, q)
		r.questionByID[q.ID] = q
	}

	return nil
}
