package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigfeelings/bigfeelings/internal/achievement"
	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/child"
	"github.com/bigfeelings/bigfeelings/internal/journal"
	"github.com/bigfeelings/bigfeelings/internal/progress"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
	"github.com/bigfeelings/bigfeelings/internal/store"
	"github.com/bigfeelings/bigfeelings/internal/store/memory"
)

type fixture struct {
	svc     *Service
	gw      *memory.Store
	ledger  *progress.Ledger
	engine  *achievement.Engine
	journal *journal.Journal
	repo    *quiz.Repo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := func() time.Time { return time.Date(2026, 7, 1, 12, 0, 0, 0, time.Local) }
	gw := memory.New()
	rec := store.NewRecords(gw, nil)
	repo := quiz.NewRepo(rec, nil)
	ledger := progress.NewLedger(rec, repo, nil)
	engine := achievement.NewEngine(rec, ledger, repo, catalog.Default(nil), now, nil)
	j := journal.New(rec, now, nil)
	svc := NewService(child.NewRepo(rec, nil), repo, rec, now, nil, ledger, engine, j)
	return &fixture{svc: svc, gw: gw, ledger: ledger, engine: engine, journal: j, repo: repo}
}

func intp(v int) *int { return &v }

func TestSelectAdoptsAgeBand(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.svc.Create(ctx, "Mia", intp(11), nil)
	require.NoError(t, err)

	_, ok := f.svc.Selected(ctx)
	assert.False(t, ok)

	_, err = f.svc.Select(ctx, c.ID)
	require.NoError(t, err)
	sel, ok := f.svc.Selected(ctx)
	require.True(t, ok)
	assert.Equal(t, c.ID, sel.ID)

	band, ok := f.svc.SelectedAgeBand(ctx)
	require.True(t, ok)
	assert.Equal(t, catalog.AgeTenToTwelve, band)

	_, err = f.svc.Update(ctx, c.ID, "Mia", intp(5), nil)
	require.NoError(t, err)
	band, _ = f.svc.SelectedAgeBand(ctx)
	assert.Equal(t, catalog.AgeFourToSix, band, "updating the selected child's age moves the band")

	_, err = f.svc.Select(ctx, "missing")
	assert.True(t, errors.Is(err, child.ErrNotFound))
}

func TestAgeBandSetAndClear(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.svc.SetAgeBand(ctx, catalog.AgeSevenToNine)
	band, ok := f.svc.SelectedAgeBand(ctx)
	assert.True(t, ok)
	assert.Equal(t, catalog.AgeSevenToNine, band)

	f.svc.ClearAgeBand(ctx)
	_, ok = f.svc.SelectedAgeBand(ctx)
	assert.False(t, ok)

	f.gw.Set(ctx, store.KeySelectedAge, []byte("99-100"))
	_, ok = f.svc.SelectedAgeBand(ctx)
	assert.False(t, ok, "unknown band is dropped")
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	day := time.Date(2026, 7, 1, 9, 0, 0, 0, time.Local)

	a, err := f.svc.Create(ctx, "A", intp(6), nil)
	require.NoError(t, err)
	b, err := f.svc.Create(ctx, "B", nil, nil)
	require.NoError(t, err)

	for _, id := range []string{a.ID, b.ID} {
		f.ledger.MarkStoryCompleted(ctx, id, "bunny-thunder")
		f.ledger.ToggleFavorite(ctx, id, "bunny-thunder")
		f.ledger.RecordActivity(ctx, id, day)
		f.journal.Save(ctx, journal.Entry{ChildID: id, FeelingName: "happy"})
		end := day
		f.repo.Save(ctx, quiz.Session{ID: "q-" + id, ChildID: id, StartDate: day, EndDate: &end})
		f.engine.Get(ctx, id)
	}
	_, err = f.svc.Select(ctx, a.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, a.ID))

	for _, key := range store.ChildKeys(a.ID) {
		_, ok, _ := f.gw.Get(ctx, key)
		assert.False(t, ok, "key %s survived delete", key)
	}
	assert.Empty(t, f.repo.ForChild(ctx, a.ID))
	_, ok := f.svc.Selected(ctx)
	assert.False(t, ok, "selection cleared")
	_, err = f.svc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, child.ErrNotFound)

	for _, key := range store.ChildKeys(b.ID) {
		_, ok, _ := f.gw.Get(ctx, key)
		assert.True(t, ok, "sibling key %s removed", key)
	}
	assert.Len(t, f.repo.ForChild(ctx, b.ID), 1)

	assert.ErrorIs(t, f.svc.Delete(ctx, a.ID), child.ErrNotFound)
}

func TestSelectedClearsStaleSelection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.gw.Set(ctx, store.KeySelectedChildID, []byte("ghost"))
	_, ok := f.svc.Selected(ctx)
	assert.False(t, ok)
	_, present, _ := f.gw.Get(ctx, store.KeySelectedChildID)
	assert.False(t, present)
}
