package service

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/listenupapp/stackqa/internal/metrics"
	"github.com/listenupapp/stackqa/internal/repository"
	"github.com/listenupapp/stackqa/internal/search"
	"github.com/listenupapp/stackqa/internal/validation"
)

var t0 = time.Date(2024, time.February, 3, 9, 0, 0, 0, time.UTC)

// testEnv wires every service over one repository and search index.
type testEnv struct {
	repo      *repository.Repository
	index     *search.Index
	metrics   *metrics.Metrics
	logs      *bytes.Buffer
	questions *QuestionService
	queries   *QueryService
	tags      *TagService
	search    *SearchService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	index, err := search.NewIndex(search.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	tick := t0
	repo, err := repository.New(repository.Seed{}, repository.Options{
		Clock: func() time.Time {
			tick = tick.Add(time.Minute)
			return tick
		},
		Indexer: index,
	})
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := metrics.New()

	return &testEnv{
		repo:      repo,
		index:     index,
		metrics:   m,
		logs:      logs,
		questions: NewQuestionService(repo, validation.New(), m, logger),
		queries:   NewQueryService(repo, m, logger),
		tags:      NewTagService(repo, logger),
		search:    NewSearchService(index, repo, m, logger),
	}
}

// scrape renders the metrics registry in the exposition format.
func (e *testEnv) scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	e.metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}
