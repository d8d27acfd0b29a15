package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/config"
	"github.com/bigfeelings/bigfeelings/internal/store"
	"github.com/bigfeelings/bigfeelings/internal/store/memory"
)

func fixedClock() time.Time { return time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC) }

func newTestServices(t *testing.T) *Services {
	t.Helper()
	svc := New(memory.New(), Options{Clock: fixedClock})
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestResolveChild(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	_, err := svc.ResolveChild(ctx, "")
	assert.ErrorIs(t, err, ErrNoChild)

	age := 5
	c, err := svc.Profiles.Create(ctx, "Mia", &age, nil)
	require.NoError(t, err)

	got, err := svc.ResolveChild(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mia", got.Name)

	_, err = svc.Profiles.Select(ctx, c.ID)
	require.NoError(t, err)
	got, err = svc.ResolveChild(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, catalog.AgeFourToSix, svc.AgeBandFor(ctx, got))
}

func TestAgeBandFallbacks(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	c, err := svc.Profiles.Create(ctx, "Leo", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, catalog.AgeSevenToNine, svc.AgeBandFor(ctx, c))

	svc.Profiles.SetAgeBand(ctx, catalog.AgeTenToTwelve)
	assert.Equal(t, catalog.AgeTenToTwelve, svc.AgeBandFor(ctx, c))
}

func TestServicesShareClock(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)
	assert.Equal(t, fixedClock(), svc.Now())

	c, err := svc.Profiles.Create(ctx, "Ana", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, fixedClock(), c.CreatedAt)

	svc.Tracker.CompleteStory(ctx, c.ID, "bunny-thunder")
	assert.Equal(t, 1, svc.Ledger.CurrentStreak(ctx, c.ID, svc.Now()))
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	c, err := svc.Profiles.Create(ctx, "Mia", nil, nil)
	require.NoError(t, err)
	svc.Tracker.CompleteStory(ctx, c.ID, "bunny-thunder")

	n, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Positive(t, n)
	assert.Empty(t, svc.Profiles.List(ctx))

	keys, err := svc.Gateway.Keys(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{store.KeyFormatVersion}, keys)
}

func TestOpen_MemoryBackend(t *testing.T) {
	cfg := &config.Config{Store: store.BackendConfig{Backend: store.BackendMemory}}
	svc, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer svc.Close()

	assert.False(t, svc.Catalog.HasError())
	assert.False(t, svc.Coach.Enabled())
	v, ok, err := svc.Gateway.Get(context.Background(), store.KeyFormatVersion)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, store.CurrentFormat, string(v))
}
