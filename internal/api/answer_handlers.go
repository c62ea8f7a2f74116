package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/stackqa/internal/service"
)

func (s *Server) registerAnswerRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listAnswers",
		Method:      http.MethodGet,
		Path:        "/api/v1/questions/{id}/answers",
		Summary:     "List answers",
		Description: "Returns a question's answers, newest first",
		Tags:        []string{"Answers"},
	}, s.handleListAnswers)

	huma.Register(s.api, huma.Operation{
		OperationID:   "postAnswer",
		Method:        http.MethodPost,
		Path:          "/api/v1/questions/{id}/answers",
		Summary:       "Post answer",
		Description:   "Attaches a new answer to a question",
		Tags:          []string{"Answers"},
		DefaultStatus: http.StatusCreated,
	}, s.handlePostAnswer)
}

// === DTOs ===

// ListAnswersInput contains parameters for listing answers.
type ListAnswersInput struct {
	ID string `path:"id" doc:"Question ID"`
}

// ListAnswersResponse contains a question's answers.
type ListAnswersResponse struct {
	QuestionID string           `json:"question_id" doc:"Question ID"`
	Answers    []AnswerResponse `json:"answers" doc:"Answers, newest first"`
}

// ListAnswersOutput wraps the list answers response for Huma.
type ListAnswersOutput struct {
	Body ListAnswersResponse
}

// PostAnswerRequest is the request body for posting an answer.
type PostAnswerRequest struct {
	Text       string `json:"text" doc:"Answer body"`
	AnsweredBy string `json:"answered_by" doc:"Author display name"`
}

// PostAnswerInput wraps the post answer request for Huma.
type PostAnswerInput struct {
	ID   string `path:"id" doc:"Question ID"`
	Body PostAnswerRequest
}

// AnswerOutput wraps the answer response for Huma.
type AnswerOutput struct {
	Body AnswerResponse
}

// === Handlers ===

func (s *Server) handleListAnswers(ctx context.Context, input *ListAnswersInput) (*ListAnswersOutput, error) {
	answers, err := s.services.Questions.ListAnswers(ctx, input.ID)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &ListAnswersOutput{
		Body: ListAnswersResponse{
			QuestionID: input.ID,
			Answers:    answerResponses(answers, s.now()),
		},
	}, nil
}

func (s *Server) handlePostAnswer(ctx context.Context, input *PostAnswerInput) (*AnswerOutput, error) {
	a, err := s.services.Questions.PostAnswer(ctx, service.PostAnswerInput{
		QuestionID: input.ID,
		Text:       input.Body.Text,
		AnsweredBy: input.Body.AnsweredBy,
	})
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &AnswerOutput{Body: answerResponse(a, s.now())}, nil
}
