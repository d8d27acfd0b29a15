// Package progress keeps per-child counters: completed stories, favorites and
// the daily activity streak.
package progress

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/bigfeelings/bigfeelings/internal/quiz"
	"github.com/bigfeelings/bigfeelings/internal/store"
)

// Streak is the stored streak record. LastActivity is nil until the first
// recorded activity.
type Streak struct {
	Streak       int        `json:"streak"`
	LastActivity *time.Time `json:"lastActivityDate,omitempty"`
}

// Ledger reads and writes progress through the persistence gateway.
type Ledger struct {
	records  *store.Records
	sessions *quiz.Repo
	log      *zap.Logger
}

// NewLedger creates a Ledger. sessions supplies quiz history for
// CompletedStoryIDs.
func NewLedger(records *store.Records, sessions *quiz.Repo, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{records: records, sessions: sessions, log: log}
}

func (l *Ledger) ids(ctx context.Context, key string) []string {
	var ids []string
	l.records.Load(ctx, key, &ids)
	return ids
}

// CompletedStories returns the explicitly completed story ids in the order
// they were completed.
func (l *Ledger) CompletedStories(ctx context.Context, childID string) []string {
	return l.ids(ctx, store.CompletedStoriesKey(childID))
}

// MarkStoryCompleted adds storyID to the child's completed list once.
func (l *Ledger) MarkStoryCompleted(ctx context.Context, childID, storyID string) {
	key := store.CompletedStoriesKey(childID)
	ids := l.ids(ctx, key)
	if slices.Contains(ids, storyID) {
		return
	}
	l.records.Save(ctx, key, append(ids, storyID))
}

// IsStoryCompleted reports whether storyID was explicitly completed.
func (l *Ledger) IsStoryCompleted(ctx context.Context, childID, storyID string) bool {
	return slices.Contains(l.CompletedStories(ctx, childID), storyID)
}

// CompletedStoryIDs is the single definition of "stories completed": explicit
// completions followed by story ids answered in the child's completed quiz
// sessions, each id once.
func (l *Ledger) CompletedStoryIDs(ctx context.Context, childID string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range l.CompletedStories(ctx, childID) {
		add(id)
	}
	if l.sessions != nil {
		sessions := l.sessions.CompletedForChild(ctx, childID)
		// Oldest session first so ids keep first-occurrence order.
		for i := len(sessions) - 1; i >= 0; i-- {
			for _, a := range sessions[i].Answers {
				add(a.StoryID)
			}
		}
	}
	return out
}

// Favorites returns the child's favorite story ids in the order added.
func (l *Ledger) Favorites(ctx context.Context, childID string) []string {
	return l.ids(ctx, store.FavoriteStoriesKey(childID))
}

// IsFavorite reports whether storyID is a favorite.
func (l *Ledger) IsFavorite(ctx context.Context, childID, storyID string) bool {
	return slices.Contains(l.Favorites(ctx, childID), storyID)
}

// ToggleFavorite flips membership of storyID and returns the new state.
func (l *Ledger) ToggleFavorite(ctx context.Context, childID, storyID string) bool {
	key := store.FavoriteStoriesKey(childID)
	ids := l.ids(ctx, key)
	if i := slices.Index(ids, storyID); i >= 0 {
		l.records.Save(ctx, key, slices.Delete(ids, i, i+1))
		return false
	}
	l.records.Save(ctx, key, append(ids, storyID))
	return true
}

// Streak returns the stored streak record.
func (l *Ledger) Streak(ctx context.Context, childID string) Streak {
	var s Streak
	l.records.Load(ctx, store.StreakKey(childID), &s)
	return s
}

// RecordActivity advances the streak for activity at now. Days are calendar
// days in now's location.
func (l *Ledger) RecordActivity(ctx context.Context, childID string, now time.Time) Streak {
	cur := l.Streak(ctx, childID)
	next := advance(cur, now)
	if next == cur {
		return cur
	}
	l.records.Save(ctx, store.StreakKey(childID), next)
	l.log.Debug("streak updated",
		zap.String("child", childID),
		zap.Int("streak", next.Streak),
	)
	return next
}

// advance is the streak state machine.
func advance(cur Streak, now time.Time) Streak {
	stamp := now
	switch {
	case cur.LastActivity == nil:
		return Streak{Streak: 1, LastActivity: &stamp}
	case sameDay(*cur.LastActivity, now):
		return cur
	case sameDay(*cur.LastActivity, now.AddDate(0, 0, -1)):
		return Streak{Streak: cur.Streak + 1, LastActivity: &stamp}
	default:
		return Streak{Streak: 1, LastActivity: &stamp}
	}
}

// CurrentStreak is the streak to display at now: the stored value while the
// last activity was today or yesterday, otherwise 0. It never writes.
func (l *Ledger) CurrentStreak(ctx context.Context, childID string, now time.Time) int {
	return current(l.Streak(ctx, childID), now)
}

func current(s Streak, now time.Time) int {
	if s.LastActivity == nil {
		return 0
	}
	if sameDay(*s.LastActivity, now) || sameDay(*s.LastActivity, now.AddDate(0, 0, -1)) {
		return s.Streak
	}
	return 0
}

// LastActivity returns the last recorded activity time, if any.
func (l *Ledger) LastActivity(ctx context.Context, childID string) (time.Time, bool) {
	s := l.Streak(ctx, childID)
	if s.LastActivity == nil {
		return time.Time{}, false
	}
	return *s.LastActivity, true
}

// Forget removes the child's ledger keys.
func (l *Ledger) Forget(ctx context.Context, childID string) {
	l.records.Remove(ctx,
		store.CompletedStoriesKey(childID),
		store.FavoriteStoriesKey(childID),
		store.StreakKey(childID),
	)
}

// sameDay compares calendar dates in ref's location.
func sameDay(t, ref time.Time) bool {
	t = t.In(ref.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
