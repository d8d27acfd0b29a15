// Package services wires the domain packages over one store.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bigfeelings/bigfeelings/internal/achievement"
	"github.com/bigfeelings/bigfeelings/internal/activity"
	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/child"
	"github.com/bigfeelings/bigfeelings/internal/coach"
	"github.com/bigfeelings/bigfeelings/internal/config"
	"github.com/bigfeelings/bigfeelings/internal/journal"
	"github.com/bigfeelings/bigfeelings/internal/llm"
	"github.com/bigfeelings/bigfeelings/internal/profile"
	"github.com/bigfeelings/bigfeelings/internal/progress"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
	"github.com/bigfeelings/bigfeelings/internal/store"
)

// Services is every domain service wired over one gateway. The CLI, the TUI
// and the HTTP API all work through it.
type Services struct {
	Log     *zap.Logger
	Gateway store.Gateway
	Records *store.Records
	Catalog *catalog.Catalog

	Children     *child.Repo
	Sessions     *quiz.Repo
	Ledger       *progress.Ledger
	Achievements *achievement.Engine
	Journal      *journal.Journal
	Profiles     *profile.Service
	Tracker      *activity.Tracker
	Coach        *coach.Service

	clock func() time.Time
}

// Options configures New. Zero values give a working default: embedded
// stories, system clock, no coach.
type Options struct {
	Catalog  *catalog.Catalog
	Clock    func() time.Time
	Provider llm.Provider
	Coach    coach.Config
	Log      *zap.Logger
}

// New wires services over gw. The caller keeps ownership of gw.
func New(gw store.Gateway, opts Options) *Services {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	stories := opts.Catalog
	if stories == nil {
		stories = catalog.Default(log)
	}
	coachCfg := opts.Coach
	if coachCfg == (coach.Config{}) {
		coachCfg = coach.DefaultConfig()
	}

	records := store.NewRecords(gw, log)
	sessions := quiz.NewRepo(records, log)
	children := child.NewRepo(records, log)
	ledger := progress.NewLedger(records, sessions, log)
	engine := achievement.NewEngine(records, ledger, sessions, stories, clock, log)
	entries := journal.New(records, clock, log)

	return &Services{
		Log:          log,
		Gateway:      gw,
		Records:      records,
		Catalog:      stories,
		Children:     children,
		Sessions:     sessions,
		Ledger:       ledger,
		Achievements: engine,
		Journal:      entries,
		Profiles:     profile.NewService(children, sessions, records, clock, log, ledger, engine, entries),
		Tracker:      activity.NewTracker(ledger, engine, sessions, entries, clock, log),
		Coach:        coach.NewService(opts.Provider, coachCfg, log),
		clock:        clock,
	}
}

// Open builds Services from configuration: it opens the configured store,
// checks the data format, loads the story catalog and, when configured, the
// LLM provider for the coach. Close releases the store.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Services, error) {
	if log == nil {
		log = zap.NewNop()
	}

	gw, err := store.OpenBackend(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := store.CheckFormat(ctx, gw); err != nil {
		gw.Close()
		return nil, err
	}

	stories := catalog.Default(log)
	if cfg.Catalog.Path != "" {
		stories = catalog.Open(cfg.Catalog.Path, log)
	}
	if stories.HasError() {
		log.Warn("story catalog unavailable", zap.Error(stories.Err()))
	}

	var provider llm.Provider
	if cfg.LLM.Enabled() {
		provider, err = llm.NewProvider(ctx, cfg.LLM, log)
		if err != nil && !errors.Is(err, llm.ErrDisabled) {
			log.Warn("coach disabled", zap.Error(err))
			provider = nil
		}
	}

	coachCfg := coach.DefaultConfig()
	if cfg.Coach.MaxTokens > 0 {
		coachCfg.MaxTokens = cfg.Coach.MaxTokens
		coachCfg.Temperature = cfg.Coach.Temperature
	}
	if cfg.LLM.Timeout > 0 {
		coachCfg.Timeout = cfg.LLM.Timeout
	}

	log.Debug("services ready",
		zap.String("backend", cfg.Store.Backend),
		zap.Int("stories", len(stories.All())),
		zap.Bool("coach", provider != nil))

	return New(gw, Options{
		Catalog:  stories,
		Provider: provider,
		Coach:    coachCfg,
		Log:      log,
	}), nil
}

// Now is the clock every service shares.
func (s *Services) Now() time.Time { return s.clock() }

// Close releases the gateway.
func (s *Services) Close() error {
	return s.Gateway.Close()
}

// ErrNoChild is returned when an operation needs a selected child.
var ErrNoChild = errors.New("no child selected")

// ResolveChild returns the child with id, or the selected child when id is
// empty.
func (s *Services) ResolveChild(ctx context.Context, id string) (child.Child, error) {
	if id != "" {
		return s.Profiles.Get(ctx, id)
	}
	c, ok := s.Profiles.Selected(ctx)
	if !ok {
		return child.Child{}, ErrNoChild
	}
	return c, nil
}

// AgeBandFor picks the stories' age band for c: the band from the child's
// age when known, then the stored selection, then the middle band.
func (s *Services) AgeBandFor(ctx context.Context, c child.Child) catalog.AgeBand {
	if band, ok := c.AgeBand(); ok {
		return band
	}
	if band, ok := s.Profiles.SelectedAgeBand(ctx); ok {
		return band
	}
	return catalog.AgeSevenToNine
}

// Reset removes every stored key and stamps a fresh format version.
func (s *Services) Reset(ctx context.Context) (int, error) {
	keys, err := s.Gateway.Keys(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("list keys: %w", err)
	}
	if err := s.Gateway.Delete(ctx, keys...); err != nil {
		return 0, fmt.Errorf("delete keys: %w", err)
	}
	if err := store.CheckFormat(ctx, s.Gateway); err != nil {
		return len(keys), err
	}
	s.Log.Info("data reset", zap.Int("keys", len(keys)))
	return len(keys), nil
}
