package search

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/stackqa/internal/domain"
	"github.com/listenupapp/stackqa/internal/repository"
)

var base = time.Date(2024, time.May, 4, 10, 0, 0, 0, time.UTC)

// setupTestIndex creates an empty index closed at test cleanup.
func setupTestIndex(t *testing.T) *Index {
	t.Helper()

	index, err := NewIndex(Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	return index
}

func sampleDocs() []*QuestionDocument {
	return []*QuestionDocument{
		{
			ID: "q-1", Title: "Programmatically navigate using React router",
			Text: "the animation isn't happening", AskedBy: "JoJi",
			Tags: []string{"react", "javascript"}, Answers: []string{"use the history library"},
			AnswerCount: 1, Views: 10, AskedAt: base.UnixMilli(),
		},
		{
			ID: "q-2", Title: "Shared preferences in android studio",
			Text: "save a string and load it later", AskedBy: "saltyPeter",
			Tags: []string{"android-studio", "javascript"}, Views: 121,
			AskedAt: base.Add(time.Hour).UnixMilli(),
		},
		{
			ID: "q-3", Title: "Object storage for a web application",
			Text: "forty million documents", AskedBy: "monkeyABC",
			Tags: []string{"storage"}, Views: 200,
			AskedAt: base.Add(2 * time.Hour).UnixMilli(),
		},
	}
}

func TestNewIndex(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestIndex_RebuildBatches(t *testing.T) {
	index := setupTestIndex(t)

	docs := make([]*QuestionDocument, 0, 1203)
	for i := range 1203 {
		docs = append(docs, &QuestionDocument{ID: fmt.Sprintf("q-%d", i+1), Title: "bulk question"})
	}
	require.NoError(t, index.Rebuild(docs))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1203), count)
}

func TestIndex_IndexQuestionReplaces(t *testing.T) {
	index := setupTestIndex(t)
	q := domain.Question{ID: "q-1", Title: "Goroutine leak", AskedAt: base, AnswerIDs: []string{}}

	require.NoError(t, index.IndexQuestion(q, nil, nil))

	q.AnswerIDs = []string{"ans-1"}
	answers := []domain.Answer{{ID: "ans-1", Text: "close the channel"}}
	require.NoError(t, index.IndexQuestion(q, []domain.Tag{{ID: "tag-1", Name: "Go"}}, answers))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	res, err := index.Search(context.Background(), SearchParams{Query: "channel", Tags: []string{"GO"}})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, 1, res.Hits[0].AnswerCount)
}

func TestIndex_Search(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.Rebuild(sampleDocs()))
	ctx := context.Background()

	t.Run("title match", func(t *testing.T) {
		res, err := index.Search(ctx, SearchParams{Query: "router"})
		require.NoError(t, err)
		require.NotEmpty(t, res.Hits)
		assert.Equal(t, "q-1", res.Hits[0].ID)
		assert.Equal(t, "Programmatically navigate using React router", res.Hits[0].Title)
		assert.Equal(t, "JoJi", res.Hits[0].AskedBy)
	})

	t.Run("stemmed body match", func(t *testing.T) {
		res, err := index.Search(ctx, SearchParams{Query: "document"})
		require.NoError(t, err)
		require.Len(t, res.Hits, 1)
		assert.Equal(t, "q-3", res.Hits[0].ID)
	})

	t.Run("answer text match", func(t *testing.T) {
		res, err := index.Search(ctx, SearchParams{Query: "history"})
		require.NoError(t, err)
		require.Len(t, res.Hits, 1)
		assert.Equal(t, "q-1", res.Hits[0].ID)
	})

	t.Run("tags narrow the result", func(t *testing.T) {
		res, err := index.Search(ctx, SearchParams{Tags: []string{"JavaScript"}, SortBy: "recent"})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), res.Total)
		assert.Equal(t, "q-2", res.Hits[0].ID)
		assert.Equal(t, "q-1", res.Hits[1].ID)

		res, err = index.Search(ctx, SearchParams{Tags: []string{"javascript", "react"}})
		require.NoError(t, err)
		require.Len(t, res.Hits, 1)
		assert.Equal(t, "q-1", res.Hits[0].ID)
	})

	t.Run("match all sorted by views", func(t *testing.T) {
		res, err := index.Search(ctx, SearchParams{SortBy: "views"})
		require.NoError(t, err)
		require.Len(t, res.Hits, 3)
		assert.Equal(t, "q-3", res.Hits[0].ID)
		assert.Equal(t, 200, res.Hits[0].Views)
	})

	t.Run("limit and offset", func(t *testing.T) {
		res, err := index.Search(ctx, SearchParams{SortBy: "recent", Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), res.Total)
		require.Len(t, res.Hits, 1)
		assert.Equal(t, "q-2", res.Hits[0].ID)
	})

	t.Run("no match", func(t *testing.T) {
		res, err := index.Search(ctx, SearchParams{Query: "kubernetes"})
		require.NoError(t, err)
		assert.Empty(t, res.Hits)
	})
}

func TestIndex_SearchFacets(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.Rebuild(sampleDocs()))

	params := DefaultSearchParams()
	res, err := index.Search(context.Background(), params)
	require.NoError(t, err)

	counts := make(map[string]int)
	for _, f := range res.Tags {
		counts[f.Value] = f.Count
	}
	assert.Equal(t, 2, counts["javascript"])
	assert.Equal(t, 1, counts["storage"])
}

func TestIndex_Rebuild(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.Rebuild(sampleDocs()))

	require.NoError(t, index.Rebuild(sampleDocs()[:1]))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestIndex_FollowsRepository(t *testing.T) {
	index := setupTestIndex(t)
	repo, err := repository.New(repository.Seed{}, repository.Options{
		Clock:   func() time.Time { return base },
		Indexer: index,
	})
	require.NoError(t, err)

	qid := repo.AddQuestion("Why does my build hang", "gradle sync never ends", []string{"android"}, "ana")
	repo.AddAnswer(qid, "invalidate caches and restart", "ben")

	res, err := index.Search(context.Background(), SearchParams{Query: "caches"})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, qid, res.Hits[0].ID)
	assert.Equal(t, 1, res.Hits[0].AnswerCount)

	for range 3 {
		_, ok := repo.RecordView(qid)
		require.True(t, ok)
	}

	res, err = index.Search(context.Background(), SearchParams{Query: "gradle"})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, 3, res.Hits[0].Views)
}
