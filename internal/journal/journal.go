// Package journal keeps each child's feelings journal.
package journal

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bigfeelings/bigfeelings/internal/store"
)

// ErrEntryNotFound is returned when deleting an unknown entry.
var ErrEntryNotFound = errors.New("journal entry not found")

// Entry is one journal record.
type Entry struct {
	ID           string    `json:"id"`
	ChildID      string    `json:"childId"`
	FeelingEmoji string    `json:"feelingEmoji"`
	FeelingName  string    `json:"feelingName"`
	Notes        *string   `json:"notes,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Journal stores entries per child. Several entries may share a day.
type Journal struct {
	records *store.Records
	now     func() time.Time
	log     *zap.Logger
}

// New creates a Journal. A nil clock means time.Now.
func New(records *store.Records, clock func() time.Time, log *zap.Logger) *Journal {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Journal{records: records, now: clock, log: log}
}

func (j *Journal) load(ctx context.Context, childID string) []Entry {
	var entries []Entry
	j.records.Load(ctx, store.JournalKey(childID), &entries)
	return entries
}

// Save appends e to the child's journal. A missing id, timestamp or emoji is
// filled in. Blank notes are dropped.
func (j *Journal) Save(ctx context.Context, e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = j.now()
	}
	if e.FeelingEmoji == "" {
		e.FeelingEmoji = EmojiFor(e.FeelingName)
	}
	if e.Notes != nil && strings.TrimSpace(*e.Notes) == "" {
		e.Notes = nil
	}
	entries := append(j.load(ctx, e.ChildID), e)
	j.records.Save(ctx, store.JournalKey(e.ChildID), entries)
	return e
}

// Entries returns the child's entries, newest first.
func (j *Journal) Entries(ctx context.Context, childID string) []Entry {
	entries := j.load(ctx, childID)
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Timestamp.After(entries[b].Timestamp)
	})
	return entries
}

// TodaysEntry returns the latest entry on now's calendar day.
func (j *Journal) TodaysEntry(ctx context.Context, childID string, now time.Time) (Entry, bool) {
	y, m, d := now.Date()
	for _, e := range j.Entries(ctx, childID) {
		ey, em, ed := e.Timestamp.In(now.Location()).Date()
		if ey == y && em == m && ed == d {
			return e, true
		}
	}
	return Entry{}, false
}

// Delete removes one entry.
func (j *Journal) Delete(ctx context.Context, childID, entryID string) error {
	entries := j.load(ctx, childID)
	for i := range entries {
		if entries[i].ID == entryID {
			entries = append(entries[:i], entries[i+1:]...)
			j.records.Save(ctx, store.JournalKey(childID), entries)
			return nil
		}
	}
	return ErrEntryNotFound
}

// Forget removes the child's whole journal.
func (j *Journal) Forget(ctx context.Context, childID string) {
	j.records.Remove(ctx, store.JournalKey(childID))
}
