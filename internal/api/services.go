package api

import "github.com/listenupapp/stackqa/internal/service"

// Services groups the business logic services used by the API server.
type Services struct {
	Questions *service.QuestionService
	Queries   *service.QueryService
	Tags      *service.TagService
	Search    *service.SearchService // Optional; search routes answer 503 without it
}
