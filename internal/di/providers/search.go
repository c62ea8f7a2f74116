package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/listenupapp/stackqa/internal/logger"
	"github.com/listenupapp/stackqa/internal/metrics"
	"github.com/listenupapp/stackqa/internal/repository"
	"github.com/listenupapp/stackqa/internal/search"
	"github.com/listenupapp/stackqa/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the in-memory Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewIndex(search.Options{
		Logger: log.WithComponent("search"),
	})
	if err != nil {
		return nil, err
	}

	log.Info("Search index initialized")

	return &SearchIndexHandle{Index: index}, nil
}

// ProvideSearchService provides the search service and builds the index
// from the seeded repository.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	repo := do.MustInvoke[*repository.Repository](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	searchService := service.NewSearchService(indexHandle.Index, repo, m, log.WithComponent("search"))
	if err := searchService.Reindex(context.Background()); err != nil {
		return nil, err
	}

	return searchService, nil
}
