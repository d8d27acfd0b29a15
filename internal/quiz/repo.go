package quiz

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/bigfeelings/bigfeelings/internal/store"
)

// Repo persists every session in one global list.
type Repo struct {
	records *store.Records
	log     *zap.Logger
}

// NewRepo creates a Repo over records.
func NewRepo(records *store.Records, log *zap.Logger) *Repo {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repo{records: records, log: log}
}

// All returns every stored session in save order.
func (r *Repo) All(ctx context.Context) []Session {
	var sessions []Session
	r.records.Load(ctx, store.KeyQuizSessions, &sessions)
	return sessions
}

// Save inserts s, or replaces the stored session with the same id.
func (r *Repo) Save(ctx context.Context, s Session) {
	sessions := r.All(ctx)
	for i := range sessions {
		if sessions[i].ID == s.ID {
			sessions[i] = s
			r.records.Save(ctx, store.KeyQuizSessions, sessions)
			return
		}
	}
	r.records.Save(ctx, store.KeyQuizSessions, append(sessions, s))
}

// Get returns the session with the given id.
func (r *Repo) Get(ctx context.Context, id string) (Session, bool) {
	for _, s := range r.All(ctx) {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}

// ForChild returns the child's sessions, newest first. Unowned sessions are
// never included.
func (r *Repo) ForChild(ctx context.Context, childID string) []Session {
	var out []Session
	for _, s := range r.All(ctx) {
		if childID != "" && s.ChildID == childID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out
}

// CompletedForChild is ForChild restricted to finished sessions.
func (r *Repo) CompletedForChild(ctx context.Context, childID string) []Session {
	var out []Session
	for _, s := range r.ForChild(ctx, childID) {
		if s.IsCompleted() {
			out = append(out, s)
		}
	}
	return out
}

// Unowned returns sessions that carry no child id.
func (r *Repo) Unowned(ctx context.Context) []Session {
	var out []Session
	for _, s := range r.All(ctx) {
		if s.ChildID == "" {
			out = append(out, s)
		}
	}
	return out
}

// AssignUnowned gives every unowned session to childID and returns how many
// moved.
func (r *Repo) AssignUnowned(ctx context.Context, childID string) int {
	sessions := r.All(ctx)
	moved := 0
	for i := range sessions {
		if sessions[i].ChildID == "" {
			sessions[i].ChildID = childID
			moved++
		}
	}
	if moved > 0 {
		r.records.Save(ctx, store.KeyQuizSessions, sessions)
		r.log.Info("adopted unowned quiz sessions", zap.String("child", childID), zap.Int("count", moved))
	}
	return moved
}

// DeleteForChild drops every session owned by childID.
func (r *Repo) DeleteForChild(ctx context.Context, childID string) int {
	if childID == "" {
		return 0
	}
	sessions := r.All(ctx)
	kept := sessions[:0]
	for _, s := range sessions {
		if s.ChildID != childID {
			kept = append(kept, s)
		}
	}
	removed := len(sessions) - len(kept)
	if removed > 0 {
		r.records.Save(ctx, store.KeyQuizSessions, kept)
	}
	return removed
}
