package providers

import (
	"time"

	"github.com/samber/do/v2"

	"github.com/listenupapp/stackqa/internal/config"
	"github.com/listenupapp/stackqa/internal/logger"
	"github.com/listenupapp/stackqa/internal/metrics"
	"github.com/listenupapp/stackqa/internal/repository"
	"github.com/listenupapp/stackqa/internal/seed"
)

// ProvideRepository loads the seed file and builds the in-memory repository.
// The search index follows every write after ProvideSearchService builds it.
func ProvideRepository(i do.Injector) (*repository.Repository, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)

	data, err := seed.Load(cfg.Seed.Path, time.Now())
	if err != nil {
		return nil, err
	}

	repo, err := repository.New(data, repository.Options{
		IDScheme: cfg.Store.IDScheme,
		Indexer:  indexHandle.Index,
		Logger:   log.WithComponent("repository"),
	})
	if err != nil {
		return nil, err
	}

	m.RegisterSizes(repo)

	log.Info("Repository loaded",
		"questions", repo.QuestionCount(),
		"answers", repo.AnswerCount(),
		"tags", repo.TagCount(),
	)

	return repo, nil
}
