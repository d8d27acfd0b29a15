// Package activity turns user events into ledger updates and reports the
// achievements each event unlocked.
package activity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bigfeelings/bigfeelings/internal/achievement"
	"github.com/bigfeelings/bigfeelings/internal/journal"
	"github.com/bigfeelings/bigfeelings/internal/progress"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
)

// Tracker wires events to the ledger and the achievement engine.
type Tracker struct {
	ledger   *progress.Ledger
	engine   *achievement.Engine
	sessions *quiz.Repo
	journal  *journal.Journal
	now      func() time.Time
	log      *zap.Logger
}

// NewTracker creates a Tracker. A nil clock means time.Now.
func NewTracker(ledger *progress.Ledger, engine *achievement.Engine, sessions *quiz.Repo, j *journal.Journal, clock func() time.Time, log *zap.Logger) *Tracker {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{
		ledger:   ledger,
		engine:   engine,
		sessions: sessions,
		journal:  j,
		now:      clock,
		log:      log,
	}
}

// CompleteStory marks a story read and counts as activity for the streak.
func (t *Tracker) CompleteStory(ctx context.Context, childID, storyID string) []achievement.Achievement {
	t.ledger.MarkStoryCompleted(ctx, childID, storyID)
	t.ledger.RecordActivity(ctx, childID, t.now())
	return t.check(ctx, childID, "story_completed")
}

// ToggleFavorite flips a favorite. It does not count toward the streak.
func (t *Tracker) ToggleFavorite(ctx context.Context, childID, storyID string) (bool, []achievement.Achievement) {
	fav := t.ledger.ToggleFavorite(ctx, childID, storyID)
	return fav, t.check(ctx, childID, "favorite_toggled")
}

// FinishQuiz stores the session under childID and records activity.
func (t *Tracker) FinishQuiz(ctx context.Context, childID string, s quiz.Session) []achievement.Achievement {
	s.ChildID = childID
	t.sessions.Save(ctx, s)
	if childID == "" {
		return nil
	}
	t.ledger.RecordActivity(ctx, childID, t.now())
	return t.check(ctx, childID, "quiz_finished")
}

// SaveJournalEntry stores an entry and records activity.
func (t *Tracker) SaveJournalEntry(ctx context.Context, e journal.Entry) (journal.Entry, []achievement.Achievement) {
	saved := t.journal.Save(ctx, e)
	t.ledger.RecordActivity(ctx, e.ChildID, t.now())
	return saved, t.check(ctx, e.ChildID, "journal_saved")
}

func (t *Tracker) check(ctx context.Context, childID, event string) []achievement.Achievement {
	unlocked := t.engine.Check(ctx, childID)
	if len(unlocked) > 0 {
		t.log.Info("event unlocked achievements",
			zap.String("event", event),
			zap.String("child", childID),
			zap.Int("count", len(unlocked)),
		)
	}
	return unlocked
}
