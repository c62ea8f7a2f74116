package service

import (
	"context"
	"log/slog"

	"github.com/listenupapp/stackqa/internal/domain"
	domainerrors "github.com/listenupapp/stackqa/internal/errors"
	"github.com/listenupapp/stackqa/internal/repository"
)

// TagService lists tags with how many questions carry them.
type TagService struct {
	repo   *repository.Repository
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(repo *repository.Repository, logger *slog.Logger) *TagService {
	return &TagService{
		repo:   repo,
		logger: logger,
	}
}

// TagWithCount is a tag and the number of questions referencing it.
type TagWithCount struct {
	domain.Tag
	QuestionCount int
}

// ListTags returns every tag in creation order.
func (s *TagService) ListTags(_ context.Context) []TagWithCount {
	tags := s.repo.GetTags()
	out := make([]TagWithCount, len(tags))
	for i, t := range tags {
		out[i] = TagWithCount{Tag: t, QuestionCount: s.repo.GetQuestionCountByTag(t.ID)}
	}
	return out
}

// GetTag returns a tag by id.
func (s *TagService) GetTag(_ context.Context, tagID string) (TagWithCount, error) {
	t, ok := s.repo.GetTagByID(tagID)
	if !ok {
		return TagWithCount{}, domainerrors.NotFoundf("tag %s not found", tagID)
	}
	return TagWithCount{Tag: t, QuestionCount: s.repo.GetQuestionCountByTag(t.ID)}, nil
}

// ResolveTags maps tag ids to tags, keeping order and skipping unknown ids.
func (s *TagService) ResolveTags(_ context.Context, tagIDs []string) []domain.Tag {
	out := make([]domain.Tag, 0, len(tagIDs))
	for _, tid := range tagIDs {
		if t, ok := s.repo.GetTagByID(tid); ok {
			out = append(out, t)
		}
	}
	return out
}
