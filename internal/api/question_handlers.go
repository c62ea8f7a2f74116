package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/stackqa/internal/service"
)

func (s *Server) registerQuestionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listQuestions",
		Method:      http.MethodGet,
		Path:        "/api/v1/questions",
		Summary:     "List questions",
		Description: "Returns one page of questions, filtered by search and arranged by order",
		Tags:        []string{"Questions"},
	}, s.handleListQuestions)

	huma.Register(s.api, huma.Operation{
		OperationID:   "askQuestion",
		Method:        http.MethodPost,
		Path:          "/api/v1/questions",
		Summary:       "Ask question",
		Description:   "Creates a new question. Unseen tag names create new tags.",
		Tags:          []string{"Questions"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAskQuestion)

	huma.Register(s.api, huma.Operation{
		OperationID: "getQuestion",
		Method:      http.MethodGet,
		Path:        "/api/v1/questions/{id}",
		Summary:     "Get question",
		Description: "Returns a question with its tags and answers and counts a view",
		Tags:        []string{"Questions"},
	}, s.handleGetQuestion)
}

// === DTOs ===

// ListQuestionsInput contains the home page query parameters.
type ListQuestionsInput struct {
	Start  string `query:"start" doc:"Index of the first question on the page (default 0)"`
	Order  string `query:"order" doc:"newest, active or unanswered; anything else means newest"`
	Search string `query:"search" doc:"Free text and [tag] terms"`
}

// ListQuestionsResponse is one page of questions.
type ListQuestionsResponse struct {
	Questions  []QuestionSummary  `json:"questions" doc:"Questions on this page"`
	Total      int                `json:"total" doc:"Number of questions matching the query"`
	Order      string             `json:"order" doc:"Order that was applied"`
	Search     string             `json:"search" doc:"Search string that was applied"`
	Pagination service.Pagination `json:"pagination" doc:"Page navigation"`
}

// ListQuestionsOutput wraps the list response for Huma.
type ListQuestionsOutput struct {
	Body ListQuestionsResponse
}

// AskQuestionRequest is the request body for asking a question.
type AskQuestionRequest struct {
	Title   string `json:"title" doc:"Question title, at most 100 characters"`
	Text    string `json:"text" doc:"Question body"`
	Tags    string `json:"tags" doc:"Space-separated tag names, 1 to 5 of at most 20 characters each"`
	AskedBy string `json:"asked_by" doc:"Author display name"`
}

// AskQuestionInput wraps the ask question request for Huma.
type AskQuestionInput struct {
	Body AskQuestionRequest
}

// GetQuestionInput contains parameters for getting a question.
type GetQuestionInput struct {
	ID string `path:"id" doc:"Question ID"`
}

// ThreadOutput wraps the thread response for Huma.
type ThreadOutput struct {
	Body ThreadResponse
}

// === Handlers ===

func (s *Server) handleListQuestions(ctx context.Context, input *ListQuestionsInput) (*ListQuestionsOutput, error) {
	page := s.services.Queries.ListQuestions(ctx, service.ListQuestionsInput{
		Start:  input.Start,
		Order:  input.Order,
		Search: input.Search,
	})

	now := s.now()
	questions := make([]QuestionSummary, len(page.Questions))
	for i, q := range page.Questions {
		questions[i] = s.questionSummary(q, s.services.Tags.ResolveTags(ctx, q.TagIDs), now)
	}

	return &ListQuestionsOutput{
		Body: ListQuestionsResponse{
			Questions:  questions,
			Total:      page.Total,
			Order:      page.Order.String(),
			Search:     page.Search,
			Pagination: page.Pagination,
		},
	}, nil
}

func (s *Server) handleAskQuestion(ctx context.Context, input *AskQuestionInput) (*ThreadOutput, error) {
	q, err := s.services.Questions.AskQuestion(ctx, service.AskQuestionInput{
		Title:   input.Body.Title,
		Text:    input.Body.Text,
		Tags:    service.SplitTags(input.Body.Tags),
		AskedBy: input.Body.AskedBy,
	})
	if err != nil {
		return nil, toHTTPError(err)
	}

	thread, err := s.services.Questions.GetQuestion(ctx, q.ID)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &ThreadOutput{Body: s.threadResponse(thread)}, nil
}

func (s *Server) handleGetQuestion(ctx context.Context, input *GetQuestionInput) (*ThreadOutput, error) {
	thread, err := s.services.Questions.ViewQuestion(ctx, input.ID)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &ThreadOutput{Body: s.threadResponse(thread)}, nil
}
