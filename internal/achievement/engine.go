// Package achievement evaluates the fixed achievement catalog against a
// child's progress and keeps per-child unlock state.
package achievement

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/progress"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
	"github.com/bigfeelings/bigfeelings/internal/store"
)

// Engine recomputes achievements for a child and persists the result.
type Engine struct {
	records  *store.Records
	ledger   *progress.Ledger
	sessions *quiz.Repo
	stories  *catalog.Catalog
	now      func() time.Time
	log      *zap.Logger
}

// NewEngine creates an Engine. A nil clock means time.Now.
func NewEngine(records *store.Records, ledger *progress.Ledger, sessions *quiz.Repo, stories *catalog.Catalog, clock func() time.Time, log *zap.Logger) *Engine {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		records:  records,
		ledger:   ledger,
		sessions: sessions,
		stories:  stories,
		now:      clock,
		log:      log,
	}
}

// History gathers everything the rules read for childID at now.
func (e *Engine) History(ctx context.Context, childID string, now time.Time) History {
	return History{
		CompletedStoryIDs: e.ledger.CompletedStoryIDs(ctx, childID),
		Favorites:         e.ledger.Favorites(ctx, childID),
		Quizzes:           e.sessions.CompletedForChild(ctx, childID),
		CurrentStreak:     e.ledger.CurrentStreak(ctx, childID, now),
		Lookup:            e.stories.ByID,
	}
}

// Get recomputes every achievement for childID, unlocks the ones that now
// meet their requirement, persists the state and returns all of it.
func (e *Engine) Get(ctx context.Context, childID string) []Achievement {
	all, _ := e.evaluate(ctx, childID)
	return all
}

// Check does the same work as Get but returns only the achievements that
// unlocked during this call.
func (e *Engine) Check(ctx context.Context, childID string) []Achievement {
	_, newly := e.evaluate(ctx, childID)
	return newly
}

// Summary returns unlocked/total counts after recomputing.
func (e *Engine) Summary(ctx context.Context, childID string) Summary {
	return Summarize(e.Get(ctx, childID))
}

// Stored returns the persisted state without recomputing.
func (e *Engine) Stored(ctx context.Context, childID string) []Achievement {
	var saved []Achievement
	e.records.Load(ctx, store.AchievementsKey(childID), &saved)
	return saved
}

// Forget removes the child's achievement state.
func (e *Engine) Forget(ctx context.Context, childID string) {
	e.records.Remove(ctx, store.AchievementsKey(childID))
}

func (e *Engine) evaluate(ctx context.Context, childID string) (all, newly []Achievement) {
	now := e.now()
	hist := e.History(ctx, childID, now)

	prev := make(map[string]Achievement)
	for _, a := range e.Stored(ctx, childID) {
		prev[a.ID] = a
	}

	for _, def := range definitions {
		a := Achievement{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Icon:        def.Icon,
			Category:    def.Category,
			Requirement: def.Requirement,
		}
		if p, ok := prev[def.ID]; ok && p.IsUnlocked {
			a.IsUnlocked = true
			a.UnlockedDate = p.UnlockedDate
		}
		a.CurrentProgress = Evaluate(def.Rule, hist, def.Requirement)

		if !a.IsUnlocked && a.CurrentProgress >= a.Requirement {
			stamp := now
			a.IsUnlocked = true
			a.UnlockedDate = &stamp
			newly = append(newly, a)
			e.log.Info("achievement unlocked",
				zap.String("child", childID),
				zap.String("achievement", a.ID),
			)
		}
		all = append(all, a)
	}

	e.records.Save(ctx, store.AchievementsKey(childID), all)
	return all, newly
}
