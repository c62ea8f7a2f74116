package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/listenupapp/stackqa/internal/domain"
	"github.com/listenupapp/stackqa/internal/metrics"
	"github.com/listenupapp/stackqa/internal/query"
	"github.com/listenupapp/stackqa/internal/repository"
	"github.com/listenupapp/stackqa/internal/search"
)

// SearchService runs relevance-ranked searches over the question index.
// It bridges the search index with the repository.
type SearchService struct {
	index   *search.Index
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.Index, repo *repository.Repository, m *metrics.Metrics, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:   index,
		repo:    repo,
		metrics: m,
		logger:  logger,
	}
}

// Search runs a ranked search. Bracketed terms in q are treated as required
// tags, the same notation the home page filter accepts.
func (s *SearchService) Search(ctx context.Context, q string, limit, offset int) (*search.SearchResult, error) {
	f := query.Parse(q)

	params := search.DefaultSearchParams()
	params.Query = f.Text
	params.Tags = f.Tags
	params.Limit = limit
	params.Offset = offset

	start := time.Now()
	res, err := s.index.Search(ctx, params)
	s.metrics.ObserveSearch(time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}

	res.Query = q
	return res, nil
}

// Reindex rebuilds the index from the repository.
func (s *SearchService) Reindex(_ context.Context) error {
	questions := s.repo.Questions()
	docs := make([]*search.QuestionDocument, 0, len(questions))

	for _, q := range questions {
		tags := make([]domain.Tag, 0, len(q.TagIDs))
		for _, tid := range q.TagIDs {
			if t, ok := s.repo.GetTagByID(tid); ok {
				tags = append(tags, t)
			}
		}
		docs = append(docs, search.QuestionToDocument(q, tags, s.repo.GetQuestionAnswers(q)))
	}

	if err := s.index.Rebuild(docs); err != nil {
		return fmt.Errorf("rebuild search index: %w", err)
	}

	s.logger.Info("search index rebuilt", "questions", len(docs))
	return nil
}

// DocumentCount returns the number of questions in the index.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}
