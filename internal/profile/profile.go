// Package profile manages child profiles and the current selection, and owns
// cascade deletion of everything a child has accumulated.
package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/child"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
	"github.com/bigfeelings/bigfeelings/internal/store"
)

// ChildData is implemented by every store of per-child state.
type ChildData interface {
	Forget(ctx context.Context, childID string)
}

// Service is the entry point for child profile operations.
type Service struct {
	children *child.Repo
	sessions *quiz.Repo
	records  *store.Records
	owners   []ChildData
	now      func() time.Time
	log      *zap.Logger
}

// NewService creates a Service. owners are told to forget a child when it is
// deleted.
func NewService(children *child.Repo, sessions *quiz.Repo, records *store.Records, clock func() time.Time, log *zap.Logger, owners ...ChildData) *Service {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		children: children,
		sessions: sessions,
		records:  records,
		owners:   owners,
		now:      clock,
		log:      log,
	}
}

// List returns every child.
func (s *Service) List(ctx context.Context) []child.Child {
	return s.children.List(ctx)
}

// Get returns one child.
func (s *Service) Get(ctx context.Context, id string) (child.Child, error) {
	return s.children.Get(ctx, id)
}

// Create adds a child with a fresh id.
func (s *Service) Create(ctx context.Context, name string, age *int, notes *string) (child.Child, error) {
	c, err := s.children.Save(ctx, child.Child{
		ID:    uuid.NewString(),
		Name:  name,
		Age:   age,
		Notes: notes,
	}, s.now())
	if err != nil {
		return child.Child{}, err
	}
	s.log.Info("child created", zap.String("child", c.ID))
	return c, nil
}

// Update replaces name, age and notes of an existing child.
func (s *Service) Update(ctx context.Context, id, name string, age *int, notes *string) (child.Child, error) {
	c, err := s.children.Get(ctx, id)
	if err != nil {
		return child.Child{}, err
	}
	c.Name, c.Age, c.Notes = name, age, notes
	c, err = s.children.Save(ctx, c, s.now())
	if err != nil {
		return child.Child{}, err
	}
	if sel, ok := s.selectedID(ctx); ok && sel == id {
		s.syncAgeBand(ctx, c)
	}
	return c, nil
}

// Delete removes the child and all of its data: ledger, achievements,
// journal, quiz sessions and the selection if it pointed here.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.children.Delete(ctx, id); err != nil {
		return err
	}
	for _, o := range s.owners {
		o.Forget(ctx, id)
	}
	removed := s.sessions.DeleteForChild(ctx, id)
	s.records.Remove(ctx, store.ChildKeys(id)...)

	if sel, ok := s.selectedID(ctx); ok && sel == id {
		s.records.Remove(ctx, store.KeySelectedChildID)
	}
	s.log.Info("child deleted", zap.String("child", id), zap.Int("sessions_removed", removed))
	return nil
}

// Select makes id the active child and adopts its age band when known.
func (s *Service) Select(ctx context.Context, id string) (child.Child, error) {
	c, err := s.children.Get(ctx, id)
	if err != nil {
		return child.Child{}, err
	}
	s.records.SaveString(ctx, store.KeySelectedChildID, id)
	s.syncAgeBand(ctx, c)
	return c, nil
}

// ClearSelection forgets the active child.
func (s *Service) ClearSelection(ctx context.Context) {
	s.records.Remove(ctx, store.KeySelectedChildID)
}

// Selected returns the active child. A selection pointing at a deleted child
// is cleared.
func (s *Service) Selected(ctx context.Context) (child.Child, bool) {
	id, ok := s.selectedID(ctx)
	if !ok {
		return child.Child{}, false
	}
	c, err := s.children.Get(ctx, id)
	if err != nil {
		s.log.Warn("clearing stale child selection", zap.String("child", id))
		s.ClearSelection(ctx)
		return child.Child{}, false
	}
	return c, true
}

// SelectedAgeBand returns the stored age band.
func (s *Service) SelectedAgeBand(ctx context.Context) (catalog.AgeBand, bool) {
	v, ok := s.records.LoadString(ctx, store.KeySelectedAge)
	if !ok {
		return "", false
	}
	band, err := catalog.ParseAgeBand(v)
	if err != nil {
		s.log.Warn("dropping unknown age band", zap.String("value", v))
		s.ClearAgeBand(ctx)
		return "", false
	}
	return band, true
}

// SetAgeBand stores band as the selected age band.
func (s *Service) SetAgeBand(ctx context.Context, band catalog.AgeBand) {
	s.records.SaveString(ctx, store.KeySelectedAge, string(band))
}

// ClearAgeBand removes the selected age band.
func (s *Service) ClearAgeBand(ctx context.Context) {
	s.records.Remove(ctx, store.KeySelectedAge)
}

func (s *Service) selectedID(ctx context.Context) (string, bool) {
	id, ok := s.records.LoadString(ctx, store.KeySelectedChildID)
	return id, ok && id != ""
}

func (s *Service) syncAgeBand(ctx context.Context, c child.Child) {
	if band, ok := c.AgeBand(); ok {
		s.SetAgeBand(ctx, band)
	}
}
