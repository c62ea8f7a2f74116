// Package service holds the use cases the presentation layers call: asking and
// answering questions, reading threads, listing tags and running queries.
// Services validate input, keep metrics and logging out of the repository,
// and translate absence into coded domain errors.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/listenupapp/stackqa/internal/domain"
	domainerrors "github.com/listenupapp/stackqa/internal/errors"
	"github.com/listenupapp/stackqa/internal/metrics"
	"github.com/listenupapp/stackqa/internal/repository"
	"github.com/listenupapp/stackqa/internal/validation"
)

// QuestionService asks, answers and reads questions.
type QuestionService struct {
	repo      *repository.Repository
	validator *validation.Validator
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewQuestionService creates a new question service. m may be nil.
func NewQuestionService(repo *repository.Repository, v *validation.Validator, m *metrics.Metrics, logger *slog.Logger) *QuestionService {
	return &QuestionService{
		repo:      repo,
		validator: v,
		metrics:   m,
		logger:    logger,
	}
}

// AskQuestionInput is the new-question form.
type AskQuestionInput struct {
	Title   string   `json:"title" validate:"required,max=100"`
	Text    string   `json:"text" validate:"required"`
	Tags    []string `json:"tags" validate:"min=1,max=5,dive,required,max=20,nospace"`
	AskedBy string   `json:"asked_by" validate:"required"`
}

// PostAnswerInput is the new-answer form.
type PostAnswerInput struct {
	QuestionID string `json:"-"`
	Text       string `json:"text" validate:"required"`
	AnsweredBy string `json:"answered_by" validate:"required"`
}

// Thread is a question with its tags and answers resolved, newest answer first.
type Thread struct {
	Question domain.Question
	Tags     []domain.Tag
	Answers  []domain.Answer
}

// SplitTags splits a whitespace-separated tag field into names.
func SplitTags(raw string) []string {
	return strings.Fields(raw)
}

// AskQuestion validates the form and stores a new question.
func (s *QuestionService) AskQuestion(_ context.Context, in AskQuestionInput) (domain.Question, error) {
	if err := s.validator.Validate(in); err != nil {
		return domain.Question{}, err
	}

	qid := s.repo.AddQuestion(in.Title, in.Text, in.Tags, in.AskedBy)
	q, ok := s.repo.GetQuestionByID(qid)
	if !ok {
		return domain.Question{}, domainerrors.Internal("question vanished after insert")
	}

	s.metrics.QuestionCreated()
	s.logger.Info("question asked",
		"question_id", q.ID,
		"asked_by", q.AskedBy,
		"tags", len(q.TagIDs),
	)

	return q, nil
}

// PostAnswer validates the form and attaches a new answer to its question.
func (s *QuestionService) PostAnswer(_ context.Context, in PostAnswerInput) (domain.Answer, error) {
	if err := s.validator.Validate(in); err != nil {
		return domain.Answer{}, err
	}

	aid := s.repo.AddAnswer(in.QuestionID, in.Text, in.AnsweredBy)
	if aid == "" {
		return domain.Answer{}, domainerrors.NotFoundf("question %s not found", in.QuestionID)
	}

	a, ok := s.repo.GetAnswerByID(aid)
	if !ok {
		return domain.Answer{}, domainerrors.Internal("answer vanished after insert")
	}

	s.metrics.AnswerCreated()
	s.logger.Info("answer posted",
		"question_id", in.QuestionID,
		"answer_id", a.ID,
		"answered_by", a.AnsweredBy,
	)

	return a, nil
}

// ViewQuestion counts a view and returns the question's thread.
func (s *QuestionService) ViewQuestion(_ context.Context, questionID string) (*Thread, error) {
	q, ok := s.repo.RecordView(questionID)
	if !ok {
		return nil, domainerrors.NotFoundf("question %s not found", questionID)
	}

	s.metrics.QuestionViewed()
	return s.thread(q), nil
}

// GetQuestion returns the question's thread without counting a view.
func (s *QuestionService) GetQuestion(_ context.Context, questionID string) (*Thread, error) {
	q, ok := s.repo.GetQuestionByID(questionID)
	if !ok {
		return nil, domainerrors.NotFoundf("question %s not found", questionID)
	}
	return s.thread(q), nil
}

// ListAnswers returns a question's answers, newest first.
func (s *QuestionService) ListAnswers(_ context.Context, questionID string) ([]domain.Answer, error) {
	q, ok := s.repo.GetQuestionByID(questionID)
	if !ok {
		return nil, domainerrors.NotFoundf("question %s not found", questionID)
	}
	return s.repo.GetQuestionAnswers(q), nil
}

func (s *QuestionService) thread(q domain.Question) *Thread {
	t := &Thread{
		Question: q,
		Tags:     make([]domain.Tag, 0, len(q.TagIDs)),
		Answers:  s.repo.GetQuestionAnswers(q),
	}
	for _, tid := range q.TagIDs {
		if tag, ok := s.repo.GetTagByID(tid); ok {
			t.Tags = append(t.Tags, tag)
		}
	}
	return t
}

// LastActivity is the newest of the question's ask and answer times.
func (t *Thread) LastActivity() time.Time {
	if last := t.Question.LastAnswerAt; last != nil && last.After(t.Question.AskedAt) {
		return *last
	}
	return t.Question.AskedAt
}
