package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/stackqa/internal/service"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns every tag in creation order with its question count",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Get tag",
		Description: "Returns a tag by ID",
		Tags:        []string{"Tags"},
	}, s.handleGetTag)
}

// === DTOs ===

// TagCountResponse is a tag with the number of questions carrying it.
type TagCountResponse struct {
	ID            string `json:"id" doc:"Tag ID"`
	Name          string `json:"name" doc:"Tag name"`
	QuestionCount int    `json:"question_count" doc:"Questions tagged with this tag"`
}

// ListTagsResponse contains a list of tags.
type ListTagsResponse struct {
	Tags []TagCountResponse `json:"tags" doc:"List of tags"`
}

// ListTagsOutput wraps the list tags response for Huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// GetTagInput contains parameters for getting a tag.
type GetTagInput struct {
	ID string `path:"id" doc:"Tag ID"`
}

// TagOutput wraps the tag response for Huma.
type TagOutput struct {
	Body TagCountResponse
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	tags := s.services.Tags.ListTags(ctx)

	resp := make([]TagCountResponse, len(tags))
	for i, t := range tags {
		resp[i] = tagCountResponse(t)
	}

	return &ListTagsOutput{Body: ListTagsResponse{Tags: resp}}, nil
}

func (s *Server) handleGetTag(ctx context.Context, input *GetTagInput) (*TagOutput, error) {
	t, err := s.services.Tags.GetTag(ctx, input.ID)
	if err != nil {
		return nil, toHTTPError(err)
	}

	return &TagOutput{Body: tagCountResponse(t)}, nil
}

func tagCountResponse(t service.TagWithCount) TagCountResponse {
	return TagCountResponse{
		ID:            t.ID,
		Name:          t.Name,
		QuestionCount: t.QuestionCount,
	}
}
