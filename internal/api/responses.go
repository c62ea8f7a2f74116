package api

import (
	"time"

	"github.com/listenupapp/stackqa/internal/domain"
	"github.com/listenupapp/stackqa/internal/service"
	"github.com/listenupapp/stackqa/internal/timefmt"
)

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID   string `json:"id" doc:"Tag ID"`
	Name string `json:"name" doc:"Tag name"`
}

// QuestionSummary is a question as it appears in a list.
type QuestionSummary struct {
	ID            string        `json:"id" doc:"Question ID"`
	Title         string        `json:"title" doc:"Question title"`
	Tags          []TagResponse `json:"tags" doc:"Tags in the order they were given"`
	AskedBy       string        `json:"asked_by" doc:"Author display name"`
	AskedAt       time.Time     `json:"asked_at" doc:"When the question was asked"`
	AskedAgo      string        `json:"asked_ago" doc:"Human-readable age of the question"`
	AnswerCount   int           `json:"answer_count" doc:"Number of answers"`
	Views         int           `json:"views" doc:"Number of times the question was viewed"`
	LastAnswerAt  *time.Time    `json:"last_answer_at,omitempty" doc:"When the newest answer was posted"`
	LastAnswerAgo string        `json:"last_answer_ago,omitempty" doc:"Human-readable age of the newest answer"`
}

// QuestionDetail is a question with its body text.
type QuestionDetail struct {
	QuestionSummary
	Text string `json:"text" doc:"Question body"`
}

// AnswerResponse contains answer data in API responses.
type AnswerResponse struct {
	ID         string    `json:"id" doc:"Answer ID"`
	Text       string    `json:"text" doc:"Answer body"`
	AnsweredBy string    `json:"answered_by" doc:"Author display name"`
	PostedAt   time.Time `json:"posted_at" doc:"When the answer was posted"`
	PostedAgo  string    `json:"posted_ago" doc:"Human-readable age of the answer"`
}

// ThreadResponse is a question page: the question, its tags and its answers.
type ThreadResponse struct {
	Question        QuestionDetail   `json:"question" doc:"The question"`
	Answers         []AnswerResponse `json:"answers" doc:"Answers, newest first"`
	LastActivityAgo string           `json:"last_activity_ago" doc:"Age of the newest question or answer post"`
}

func (s *Server) questionSummary(q domain.Question, tags []domain.Tag, now time.Time) QuestionSummary {
	out := QuestionSummary{
		ID:          q.ID,
		Title:       q.Title,
		Tags:        tagResponses(tags),
		AskedBy:     q.AskedBy,
		AskedAt:     q.AskedAt,
		AskedAgo:    timefmt.Relative(q.AskedAt, now),
		AnswerCount: q.AnswerCount(),
		Views:       q.Views,
	}
	if q.LastAnswerAt != nil {
		at := *q.LastAnswerAt
		out.LastAnswerAt = &at
		out.LastAnswerAgo = timefmt.Relative(at, now)
	}
	return out
}

func (s *Server) threadResponse(t *service.Thread) ThreadResponse {
	now := s.now()
	return ThreadResponse{
		Question: QuestionDetail{
			QuestionSummary: s.questionSummary(t.Question, t.Tags, now),
			Text:            t.Question.Text,
		},
		Answers:         answerResponses(t.Answers, now),
		LastActivityAgo: timefmt.Relative(t.LastActivity(), now),
	}
}

func tagResponses(tags []domain.Tag) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i, t := range tags {
		out[i] = TagResponse{ID: t.ID, Name: t.Name}
	}
	return out
}

func answerResponse(a domain.Answer, now time.Time) AnswerResponse {
	return AnswerResponse{
		ID:         a.ID,
		Text:       a.Text,
		AnsweredBy: a.AnsweredBy,
		PostedAt:   a.PostedAt,
		PostedAgo:  timefmt.Relative(a.PostedAt, now),
	}
}

func answerResponses(answers []domain.Answer, now time.Time) []AnswerResponse {
	out := make([]AnswerResponse, len(answers))
	for i, a := range answers {
		out[i] = answerResponse(a, now)
	}
	return out
}
