package achievement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/progress"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
	"github.com/bigfeelings/bigfeelings/internal/store"
	"github.com/bigfeelings/bigfeelings/internal/store/memory"
)

type fixture struct {
	engine *Engine
	ledger *progress.Ledger
	repo   *quiz.Repo
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: time.Date(2026, 4, 1, 10, 0, 0, 0, time.Local)}
	rec := store.NewRecords(memory.New(), nil)
	f.repo = quiz.NewRepo(rec, nil)
	f.ledger = progress.NewLedger(rec, f.repo, nil)
	stories := catalog.FromStories([]catalog.Story{
		{ID: "s1", Feeling: "Scared"},
		{ID: "s2", Feeling: "Angry"},
		{ID: "s3", Feeling: "Lonely"},
	})
	f.engine = NewEngine(rec, f.ledger, f.repo, stories, func() time.Time { return f.now }, nil)
	return f
}

func ids(as []Achievement) []string {
	var out []string
	for _, a := range as {
		out = append(out, a.ID)
	}
	return out
}

func find(as []Achievement, id string) Achievement {
	for _, a := range as {
		if a.ID == id {
			return a
		}
	}
	return Achievement{}
}

func TestCheckReturnsOnlyNewUnlocks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.Empty(t, f.engine.Check(ctx, "c1"))

	f.ledger.MarkStoryCompleted(ctx, "c1", "s1")
	newly := f.engine.Check(ctx, "c1")
	assert.Equal(t, []string{"first_story"}, ids(newly))
	require.NotNil(t, newly[0].UnlockedDate)
	assert.True(t, newly[0].UnlockedDate.Equal(f.now))

	assert.Empty(t, f.engine.Check(ctx, "c1"), "second check with no progress change")
}

func TestGetPersistsAndUnlocks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.ledger.MarkStoryCompleted(ctx, "c1", "s1")
	all := f.engine.Get(ctx, "c1")
	require.Len(t, all, 25)
	assert.True(t, find(all, "first_story").IsUnlocked)
	assert.Equal(t, 1, find(all, "bookworm").CurrentProgress)

	stored := f.engine.Stored(ctx, "c1")
	require.Len(t, stored, 25)
	assert.True(t, find(stored, "first_story").IsUnlocked)

	// Get already unlocked it, so Check has nothing new to report.
	assert.Empty(t, f.engine.Check(ctx, "c1"))
}

func TestUnlockIsOneWay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.ledger.ToggleFavorite(ctx, "c1", "s1")
	f.ledger.ToggleFavorite(ctx, "c1", "s2")
	f.ledger.ToggleFavorite(ctx, "c1", "s3")
	require.Equal(t, []string{"favorite_fan"}, ids(f.engine.Check(ctx, "c1")))
	unlockedAt := f.now

	f.ledger.ToggleFavorite(ctx, "c1", "s1")
	f.now = f.now.Add(time.Hour)
	fan := find(f.engine.Get(ctx, "c1"), "favorite_fan")
	assert.True(t, fan.IsUnlocked)
	assert.Equal(t, 2, fan.CurrentProgress)
	require.NotNil(t, fan.UnlockedDate)
	assert.True(t, fan.UnlockedDate.Equal(unlockedAt), "unlock date must not move")
}

func TestStreakAchievementSurvivesLapse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for d := 0; d < 3; d++ {
		f.ledger.RecordActivity(ctx, "c1", f.now.AddDate(0, 0, d))
	}
	f.now = f.now.AddDate(0, 0, 2)
	assert.Contains(t, ids(f.engine.Check(ctx, "c1")), "getting_started")

	f.now = f.now.AddDate(0, 0, 5)
	started := find(f.engine.Get(ctx, "c1"), "getting_started")
	assert.Equal(t, 0, started.CurrentProgress, "lapsed streak reads as 0")
	assert.True(t, started.IsUnlocked)
}

func TestQuizUnlocksAndChildIsolation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	end := f.now
	f.repo.Save(ctx, quiz.Session{
		ID: "q1", ChildID: "c1", StartDate: f.now, EndDate: &end,
		Answers: []quiz.Answer{
			{StoryID: "s1", Feeling: "Scared", SelectedChoiceType: catalog.ChoiceGood},
			{StoryID: "s2", Feeling: "Angry", SelectedChoiceType: catalog.ChoiceGood},
		},
	})

	newly := ids(f.engine.Check(ctx, "c1"))
	for _, id := range []string{"first_story", "first_quiz", "perfect_score", "all_rounder", "rising_star"} {
		assert.Contains(t, newly, id)
	}
	assert.Empty(t, f.engine.Check(ctx, "c2"), "sibling must not see c1's quiz")
}

func TestForgetAndSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.ledger.MarkStoryCompleted(ctx, "c1", "s1")
	f.ledger.MarkStoryCompleted(ctx, "c2", "s1")
	assert.Equal(t, Summary{Unlocked: 1, Total: 25}, f.engine.Summary(ctx, "c1"))
	f.engine.Get(ctx, "c2")

	f.engine.Forget(ctx, "c1")
	assert.Empty(t, f.engine.Stored(ctx, "c1"))
	assert.Len(t, f.engine.Stored(ctx, "c2"), 25)
}
