package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/stackqa/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search questions",
		Description: "Relevance-ranked search over titles, bodies, tags and answers",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// === DTOs ===

// SearchInput contains parameters for searching questions.
type SearchInput struct {
	Query  string `query:"q" maxLength:"200" doc:"Search query; [tag] terms are required tags"`
	Limit  int    `query:"limit" minimum:"0" maximum:"100" doc:"Max results (default 20)"`
	Offset int    `query:"offset" minimum:"0" doc:"Pagination offset (default 0)"`
}

// SearchHitResult contains a single matching question.
type SearchHitResult struct {
	ID          string            `json:"id" doc:"Question ID"`
	Score       float64           `json:"score" doc:"Search relevance score"`
	Title       string            `json:"title" doc:"Question title"`
	AskedBy     string            `json:"asked_by,omitempty" doc:"Author display name"`
	AnswerCount int               `json:"answer_count" doc:"Number of answers"`
	Views       int               `json:"views" doc:"Number of views"`
	Highlights  map[string]string `json:"highlights,omitempty" doc:"Highlighted matches"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value" doc:"Facet value"`
	Count int    `json:"count" doc:"Number of matches"`
}

// SearchResponse contains search results.
type SearchResponse struct {
	Query  string            `json:"query" doc:"Original search query"`
	Total  uint64            `json:"total" doc:"Total matches"`
	TookMs int64             `json:"took_ms" doc:"Search duration in milliseconds"`
	Hits   []SearchHitResult `json:"hits" doc:"Search results"`
	Tags   []FacetCount      `json:"tags,omitempty" doc:"Tag counts among the matches"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body SearchResponse
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if s.services.Search == nil {
		return nil, huma.Error503ServiceUnavailable("search is not available")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = search.DefaultLimit
	}

	s.logger.Debug("search request received",
		"query", input.Query,
		"limit", limit,
		"offset", input.Offset,
	)

	res, err := s.services.Search.Search(ctx, input.Query, limit, input.Offset)
	if err != nil {
		s.logger.Error("search failed", "query", input.Query, "error", err)
		return nil, toHTTPError(err)
	}

	resp := SearchResponse{
		Query:  res.Query,
		Total:  res.Total,
		TookMs: res.TookMs,
		Hits:   make([]SearchHitResult, len(res.Hits)),
	}
	for i, h := range res.Hits {
		resp.Hits[i] = SearchHitResult{
			ID:          h.ID,
			Score:       h.Score,
			Title:       h.Title,
			AskedBy:     h.AskedBy,
			AnswerCount: h.AnswerCount,
			Views:       h.Views,
			Highlights:  h.Highlights,
		}
	}
	for _, f := range res.Tags {
		resp.Tags = append(resp.Tags, FacetCount{Value: f.Value, Count: f.Count})
	}

	return &SearchOutput{Body: resp}, nil
}
