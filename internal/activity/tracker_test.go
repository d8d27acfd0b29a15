package activity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigfeelings/bigfeelings/internal/achievement"
	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/journal"
	"github.com/bigfeelings/bigfeelings/internal/progress"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
	"github.com/bigfeelings/bigfeelings/internal/store"
	"github.com/bigfeelings/bigfeelings/internal/store/memory"
)

type fixture struct {
	tracker *Tracker
	ledger  *progress.Ledger
	repo    *quiz.Repo
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: time.Date(2026, 8, 3, 16, 0, 0, 0, time.Local)}
	clock := func() time.Time { return f.now }
	rec := store.NewRecords(memory.New(), nil)
	f.repo = quiz.NewRepo(rec, nil)
	f.ledger = progress.NewLedger(rec, f.repo, nil)
	engine := achievement.NewEngine(rec, f.ledger, f.repo, catalog.Default(nil), clock, nil)
	f.tracker = NewTracker(f.ledger, engine, f.repo, journal.New(rec, clock, nil), clock, nil)
	return f
}

func unlockedIDs(as []achievement.Achievement) []string {
	var out []string
	for _, a := range as {
		out = append(out, a.ID)
	}
	return out
}

func TestCompleteStoryUnlocksFirstStory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	got := f.tracker.CompleteStory(ctx, "c1", "bunny-thunder")
	assert.Equal(t, []string{"first_story"}, unlockedIDs(got))
	assert.Equal(t, 1, f.ledger.CurrentStreak(ctx, "c1", f.now))

	assert.Empty(t, f.tracker.CompleteStory(ctx, "c1", "bunny-thunder"))
}

func TestStreakAcrossDaysUnlocksGettingStarted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.tracker.CompleteStory(ctx, "c1", "bunny-thunder")
	f.now = f.now.AddDate(0, 0, 1)
	f.tracker.SaveJournalEntry(ctx, journal.Entry{ChildID: "c1", FeelingName: "calm"})
	f.now = f.now.AddDate(0, 0, 1)
	_, unlocked := f.tracker.SaveJournalEntry(ctx, journal.Entry{ChildID: "c1", FeelingName: "proud"})

	assert.Contains(t, unlockedIDs(unlocked), "getting_started")
}

func TestFavoriteDoesNotStreak(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	fav, _ := f.tracker.ToggleFavorite(ctx, "c1", "bunny-thunder")
	assert.True(t, fav)
	assert.Equal(t, 0, f.ledger.CurrentStreak(ctx, "c1", f.now))
}

func TestFinishQuiz(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	stories := catalog.Default(nil).ByAgeBand(catalog.AgeFourToSix)
	require.NotEmpty(t, stories)
	b := quiz.NewBuilder(catalog.AgeFourToSix, stories, "", f.now)
	for _, s := range stories {
		for _, c := range s.Choices {
			if c.Type == catalog.ChoiceGood {
				b.Answer(s, c.ID, f.now)
			}
		}
	}

	unlocked := unlockedIDs(f.tracker.FinishQuiz(ctx, "c1", b.Finish(f.now)))
	for _, id := range []string{"first_story", "first_quiz", "perfect_score", "all_rounder", "rising_star"} {
		assert.Contains(t, unlocked, id)
	}
	require.Len(t, f.repo.CompletedForChild(ctx, "c1"), 1)
	assert.Equal(t, 1, f.ledger.CurrentStreak(ctx, "c1", f.now))
}

func TestFinishQuizWithoutChild(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	end := f.now
	assert.Nil(t, f.tracker.FinishQuiz(ctx, "", quiz.Session{ID: "q", StartDate: f.now, EndDate: &end}))
	assert.Len(t, f.repo.Unowned(ctx), 1)
}
