package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigfeelings/bigfeelings/internal/store"
	"github.com/bigfeelings/bigfeelings/internal/store/memory"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	return NewRepo(store.NewRecords(memory.New(), nil), nil)
}

func session(id, child string, start time.Time, done bool) Session {
	s := Session{ID: id, ChildID: child, StartDate: start}
	if done {
		end := start.Add(time.Minute)
		s.EndDate = &end
	}
	return s
}

func TestRepoSaveUpserts(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	t0 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	r.Save(ctx, session("q1", "c1", t0, false))
	r.Save(ctx, session("q1", "c1", t0, true))
	r.Save(ctx, session("q2", "c1", t0.Add(time.Hour), true))

	all := r.All(ctx)
	require.Len(t, all, 2)
	assert.True(t, all[0].IsCompleted(), "upsert should replace in place")

	got, ok := r.Get(ctx, "q2")
	require.True(t, ok)
	assert.Equal(t, "c1", got.ChildID)
}

func TestRepoPerChildViews(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	t0 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	r.Save(ctx, session("old", "c1", t0, true))
	r.Save(ctx, session("new", "c1", t0.Add(24*time.Hour), true))
	r.Save(ctx, session("open", "c1", t0.Add(48*time.Hour), false))
	r.Save(ctx, session("sib", "c2", t0, true))
	r.Save(ctx, session("legacy", "", t0, true))

	forChild := r.ForChild(ctx, "c1")
	require.Len(t, forChild, 3)
	assert.Equal(t, "open", forChild[0].ID, "newest first")

	completed := r.CompletedForChild(ctx, "c1")
	require.Len(t, completed, 2)
	assert.Equal(t, "new", completed[0].ID)

	assert.Empty(t, r.ForChild(ctx, ""), "unowned sessions never belong to a child")
	assert.Len(t, r.Unowned(ctx), 1)
}

func TestRepoAssignUnowned(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	t0 := time.Now()

	r.Save(ctx, session("a", "", t0, true))
	r.Save(ctx, session("b", "c2", t0, true))
	r.Save(ctx, session("c", "", t0, false))

	assert.Equal(t, 2, r.AssignUnowned(ctx, "c1"))
	assert.Empty(t, r.Unowned(ctx))
	assert.Len(t, r.ForChild(ctx, "c1"), 2)
	assert.Len(t, r.ForChild(ctx, "c2"), 1, "owned sessions must not move")
	assert.Equal(t, 0, r.AssignUnowned(ctx, "c1"))
}

func TestRepoDeleteForChild(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	t0 := time.Now()

	r.Save(ctx, session("a", "c1", t0, true))
	r.Save(ctx, session("b", "c2", t0, true))
	r.Save(ctx, session("c", "", t0, true))

	assert.Equal(t, 1, r.DeleteForChild(ctx, "c1"))
	assert.Equal(t, 0, r.DeleteForChild(ctx, ""))
	assert.Len(t, r.All(ctx), 2)
	assert.Empty(t, r.ForChild(ctx, "c1"))
}
