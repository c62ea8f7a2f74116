package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/stackqa/internal/logger"
	"github.com/listenupapp/stackqa/internal/metrics"
	"github.com/listenupapp/stackqa/internal/repository"
	"github.com/listenupapp/stackqa/internal/service"
	"github.com/listenupapp/stackqa/internal/validation"
)

// ProvideValidator provides the form validator.
func ProvideValidator(_ do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideQuestionService provides the question service.
func ProvideQuestionService(i do.Injector) (*service.QuestionService, error) {
	repo := do.MustInvoke[*repository.Repository](i)
	v := do.MustInvoke[*validation.Validator](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewQuestionService(repo, v, m, log.WithComponent("questions")), nil
}

// ProvideQueryService provides the home page query service.
func ProvideQueryService(i do.Injector) (*service.QueryService, error) {
	repo := do.MustInvoke[*repository.Repository](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewQueryService(repo, m, log.WithComponent("queries")), nil
}

// ProvideTagService provides the tag service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	repo := do.MustInvoke[*repository.Repository](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(repo, log.WithComponent("tags")), nil
}
