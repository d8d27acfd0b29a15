// Package child stores child profiles.
package child

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/store"
)

// ErrNotFound is returned when no child has the requested id.
var ErrNotFound = errors.New("child not found")

// ErrNameRequired is returned when saving a child with a blank name.
var ErrNameRequired = errors.New("child name is required")

// Child is a profile that owns all per-child progress.
type Child struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       *int      `json:"age,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AgeBand maps the child's age to a story band. ok is false when no age is
// set.
func (c Child) AgeBand() (band catalog.AgeBand, ok bool) {
	if c.Age == nil {
		return "", false
	}
	return catalog.BandForAge(*c.Age), true
}

// Repo keeps the child list under one key.
type Repo struct {
	records *store.Records
	log     *zap.Logger
}

// NewRepo creates a Repo.
func NewRepo(records *store.Records, log *zap.Logger) *Repo {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repo{records: records, log: log}
}

// List returns every child in creation order.
func (r *Repo) List(ctx context.Context) []Child {
	var children []Child
	r.records.Load(ctx, store.KeyChildren, &children)
	return children
}

// Get returns the child with id.
func (r *Repo) Get(ctx context.Context, id string) (Child, error) {
	for _, c := range r.List(ctx) {
		if c.ID == id {
			return c, nil
		}
	}
	return Child{}, ErrNotFound
}

// Save inserts c or updates the existing record in place. UpdatedAt is set
// to now; CreatedAt is kept from the stored record on update.
func (r *Repo) Save(ctx context.Context, c Child, now time.Time) (Child, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return Child{}, ErrNameRequired
	}
	c.UpdatedAt = now

	children := r.List(ctx)
	for i := range children {
		if children[i].ID == c.ID {
			c.CreatedAt = children[i].CreatedAt
			children[i] = c
			r.records.Save(ctx, store.KeyChildren, children)
			return c, nil
		}
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	r.records.Save(ctx, store.KeyChildren, append(children, c))
	return c, nil
}

// Delete removes the child record only. Cascading is the caller's job.
func (r *Repo) Delete(ctx context.Context, id string) error {
	children := r.List(ctx)
	for i := range children {
		if children[i].ID == id {
			children = append(children[:i], children[i+1:]...)
			r.records.Save(ctx, store.KeyChildren, children)
			return nil
		}
	}
	return ErrNotFound
}
