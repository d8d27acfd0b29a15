// Package catalog holds the read-only set of story scenarios.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

//go:embed scenarios.json
var bundled []byte

// ErrStoryNotFound is returned when a story id is not in the catalog.
var ErrStoryNotFound = errors.New("story not found")

// Catalog is an immutable list of stories. A catalog that failed to load is
// empty and keeps the load error.
type Catalog struct {
	stories []Story
	byID    map[string]int
	err     error
}

// Parse validates data against the scenarios schema and decodes it.
func Parse(data []byte) ([]Story, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	var stories []Story
	if err := json.Unmarshal(data, &stories); err != nil {
		return nil, fmt.Errorf("decode stories: %w", err)
	}
	return stories, nil
}

// Default loads the bundled scenarios.
func Default(log *zap.Logger) *Catalog {
	return load(bundled, "bundled scenarios", log)
}

// Open loads scenarios from path. An empty path means the bundled file.
func Open(path string, log *zap.Logger) *Catalog {
	if path == "" {
		return Default(log)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return failed(fmt.Errorf("read %s: %w", path, err), log)
	}
	return load(data, path, log)
}

// FromStories builds a catalog from stories already in memory.
func FromStories(stories []Story) *Catalog {
	c := &Catalog{
		stories: stories,
		byID:    make(map[string]int, len(stories)),
	}
	for i, s := range stories {
		if _, dup := c.byID[s.ID]; !dup {
			c.byID[s.ID] = i
		}
	}
	return c
}

func load(data []byte, source string, log *zap.Logger) *Catalog {
	stories, err := Parse(data)
	if err != nil {
		return failed(fmt.Errorf("load %s: %w", source, err), log)
	}
	return FromStories(stories)
}

func failed(err error, log *zap.Logger) *Catalog {
	if log != nil {
		log.Error("story catalog unavailable", zap.Error(err))
	}
	return &Catalog{byID: map[string]int{}, err: err}
}

// HasError reports whether loading failed.
func (c *Catalog) HasError() bool { return c.err != nil }

// Err returns the load error, if any.
func (c *Catalog) Err() error { return c.err }

// All returns every story in file order.
func (c *Catalog) All() []Story {
	out := make([]Story, len(c.stories))
	copy(out, c.stories)
	return out
}

// ByAgeBand returns the stories for band in file order.
func (c *Catalog) ByAgeBand(band AgeBand) []Story {
	var out []Story
	for _, s := range c.stories {
		if s.AgeRange == band {
			out = append(out, s)
		}
	}
	return out
}

// ByID looks a story up by id.
func (c *Catalog) ByID(id string) (Story, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Story{}, false
	}
	return c.stories[i], true
}

// Get is ByID with an error for callers that propagate one.
func (c *Catalog) Get(id string) (Story, error) {
	s, ok := c.ByID(id)
	if !ok {
		return Story{}, fmt.Errorf("%w: %s", ErrStoryNotFound, id)
	}
	return s, nil
}

// Feelings returns the distinct story feelings in first-occurrence order.
// Comparison ignores case; the first spelling seen is kept.
func (c *Catalog) Feelings() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range c.stories {
		key := strings.ToLower(s.Feeling)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s.Feeling)
	}
	return out
}
