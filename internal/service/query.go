package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/listenupapp/stackqa/internal/domain"
	"github.com/listenupapp/stackqa/internal/metrics"
	"github.com/listenupapp/stackqa/internal/query"
	"github.com/listenupapp/stackqa/internal/repository"
	"github.com/listenupapp/stackqa/internal/sorting"
)

// QueryService runs the home page question query from raw request values.
type QueryService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewQueryService creates a new query service. m may be nil.
func NewQueryService(repo *repository.Repository, m *metrics.Metrics, logger *slog.Logger) *QueryService {
	return &QueryService{
		repo:    repo,
		metrics: m,
		logger:  logger,
	}
}

// ListQuestionsInput carries the query exactly as the page received it.
type ListQuestionsInput struct {
	Start  string // Decimal index of the first question; empty means 0
	Order  string // newest, active or unanswered; anything else means newest
	Search string // Free text and [tag] terms
}

// QuestionPage is one page of the home page query.
type QuestionPage struct {
	repository.Page
	Order      sorting.Order
	Search     string
	Pagination Pagination
}

// ListQuestions assembles and runs the query.
//
// It never fails: when the input cannot be turned into a query the problem is
// logged and an empty page is returned, so the page renders no results
// instead of an error.
func (s *QueryService) ListQuestions(ctx context.Context, in ListQuestionsInput) QuestionPage {
	order := sorting.ParseOrder(in.Order)

	start, err := parseStart(in.Start)
	if err != nil {
		s.logger.WarnContext(ctx, "could not assemble question query",
			"start", in.Start,
			"order", in.Order,
			"error", err,
		)
		return emptyPage(order, in.Search)
	}

	f := query.Parse(in.Search)
	page := s.repo.Query(start, order, f)
	s.metrics.QueryServed(order.String(), !f.MatchesAll())

	return QuestionPage{
		Page:       page,
		Order:      order,
		Search:     in.Search,
		Pagination: Paginate(page.Start, page.Total),
	}
}

func parseStart(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func emptyPage(order sorting.Order, search string) QuestionPage {
	return QuestionPage{
		Page:       repository.Page{Questions: []domain.Question{}},
		Order:      order,
		Search:     search,
		Pagination: Paginate(0, 0),
	}
}
