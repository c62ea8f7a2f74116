package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_AddAnswer(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	q := Question{ID: "q-1"}

	require.Nil(t, q.LastAnswerAt)
	assert.True(t, q.LastActivity().Equal(time.Unix(0, 0)))

	q.AddAnswer("ans-1", base.Add(time.Hour))
	q.AddAnswer("ans-2", base) // older answer arriving later

	assert.Equal(t, []string{"ans-1", "ans-2"}, q.AnswerIDs)
	assert.Equal(t, 2, q.AnswerCount())
	require.NotNil(t, q.LastAnswerAt)
	assert.Equal(t, base.Add(time.Hour), *q.LastAnswerAt)
}

func TestQuestion_AddAnswer_Duplicate(t *testing.T) {
	q := Question{ID: "q-1"}
	now := time.Now()

	q.AddAnswer("ans-1", now)
	q.AddAnswer("ans-1", now.Add(time.Minute))

	assert.Equal(t, []string{"ans-1"}, q.AnswerIDs)
	assert.Equal(t, now, *q.LastAnswerAt)
}

func TestQuestion_AddView(t *testing.T) {
	q := Question{Views: 3}
	q.AddView()
	assert.Equal(t, 4, q.Views)
}

func TestQuestion_HasTag(t *testing.T) {
	q := Question{TagIDs: []string{"tag-1", "tag-3"}}
	assert.True(t, q.HasTag("tag-3"))
	assert.False(t, q.HasTag("tag-2"))
}

func TestQuestion_Clone(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	q := Question{
		ID:           "q-1",
		TagIDs:       []string{"tag-1"},
		AnswerIDs:    []string{"ans-1"},
		LastAnswerAt: &at,
	}

	c := q.Clone()
	c.TagIDs[0] = "tag-9"
	c.AnswerIDs = append(c.AnswerIDs, "ans-2")
	*c.LastAnswerAt = at.Add(time.Hour)

	assert.Equal(t, []string{"tag-1"}, q.TagIDs)
	assert.Equal(t, []string{"ans-1"}, q.AnswerIDs)
	assert.Equal(t, at, *q.LastAnswerAt)
}
