package coach

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/llm"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
)

func finishedSession() quiz.Session {
	end := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	return quiz.Session{
		ID:        "s1",
		AgeRange:  catalog.AgeFourToSix,
		StartDate: end.Add(-10 * time.Minute),
		EndDate:   &end,
		ChildID:   "child-1",
		Answers: []quiz.Answer{
			{StoryID: "bunny-thunder", StoryTitle: "Benny and the Thunder", Feeling: "Scared", SelectedChoiceType: catalog.ChoiceGood},
			{StoryID: "puppy-tower", StoryTitle: "Pip's Tower", Feeling: "Angry", SelectedChoiceType: catalog.ChoiceBad},
		},
	}
}

const threeStarters = `{"starters":["When did you feel brave this week?","What helps you calm down when you are cross?","Who would you like to play with tomorrow?"]}`

func TestStarters(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(threeStarters)})
	svc := NewService(mock, DefaultConfig(), nil)

	starters, err := svc.Starters(context.Background(), finishedSession())
	require.NoError(t, err)
	assert.Len(t, starters, StarterCount)
	assert.Equal(t, "When did you feel brave this week?", starters[0])

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Same(t, StartersSchema, req.Schema)
	msg := req.Messages[0].Content
	assert.Contains(t, msg, "Ages 4-6")
	assert.Contains(t, msg, "the character felt angry; the child's response was unkind")
	assert.NotContains(t, msg, "child-1", "child identity stays local")
}

func TestStarters_TrimsAndCaps(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"starters":["  one? ", "", "two?", "three?", "four?"]}`),
	})
	starters, err := NewService(mock, DefaultConfig(), nil).Starters(context.Background(), finishedSession())
	require.NoError(t, err)
	assert.Equal(t, []string{"one?", "two?", "three?"}, starters)
}

func TestStarters_Errors(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		svc := NewService(nil, DefaultConfig(), nil)
		assert.False(t, svc.Enabled())
		_, err := svc.Starters(context.Background(), finishedSession())
		assert.ErrorIs(t, err, ErrDisabled)
	})

	t.Run("no answers", func(t *testing.T) {
		mock := llm.NewMockProvider()
		_, err := NewService(mock, DefaultConfig(), nil).Starters(context.Background(), quiz.Session{ID: "empty"})
		assert.ErrorIs(t, err, ErrNoAnswers)
		assert.Zero(t, mock.CallCount())
	})

	t.Run("schema violation", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"ideas":["x"]}`)})
		_, err := NewService(mock, DefaultConfig(), nil).Starters(context.Background(), finishedSession())
		var invalid *llm.ErrInvalidResponse
		assert.True(t, errors.As(err, &invalid))
	})

	t.Run("empty list", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"starters":[" "]}`)})
		_, err := NewService(mock, DefaultConfig(), nil).Starters(context.Background(), finishedSession())
		var invalid *llm.ErrInvalidResponse
		assert.True(t, errors.As(err, &invalid))
	})

	t.Run("provider failure", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
		_, err := NewService(mock, DefaultConfig(), nil).Starters(context.Background(), finishedSession())
		var rl *llm.ErrRateLimit
		assert.True(t, errors.As(err, &rl))
		assert.True(t, strings.HasPrefix(err.Error(), "conversation starters:"))
	})
}

func TestRequestConsume(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(threeStarters)})
	svc := NewService(mock, DefaultConfig(), nil)

	svc.Request(t.Context(), finishedSession())

	var (
		res Result
		ok  bool
	)
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if res, ok = svc.Consume(); ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.True(t, ok, "result never arrived")
	require.NoError(t, res.Err)
	assert.Len(t, res.Starters, StarterCount)

	_, ok = svc.Consume()
	assert.False(t, ok, "result is cleared after consumption")
}
