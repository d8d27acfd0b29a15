package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bigfeelings/bigfeelings/internal/store"
	"github.com/bigfeelings/bigfeelings/internal/store/memory"
)

func newTestJournal(now time.Time) *Journal {
	return New(store.NewRecords(memory.New(), nil), func() time.Time { return now }, nil)
}

func TestSaveDefaults(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 1, 18, 0, 0, 0, time.Local)
	j := newTestJournal(now)

	blank := "  "
	e := j.Save(ctx, Entry{ChildID: "c1", FeelingName: "Scared", Notes: &blank})
	if e.ID == "" || !e.Timestamp.Equal(now) {
		t.Errorf("defaults not applied: %+v", e)
	}
	if e.FeelingEmoji != "😨" {
		t.Errorf("emoji = %q, want 😨", e.FeelingEmoji)
	}
	if e.Notes != nil {
		t.Error("blank notes should be dropped")
	}
}

func TestEntriesNewestFirstAndTodaysEntry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 6, 2, 20, 0, 0, 0, time.Local)
	j := newTestJournal(now)

	yesterday := now.AddDate(0, 0, -1)
	j.Save(ctx, Entry{ID: "e1", ChildID: "c1", FeelingName: "sad", Timestamp: yesterday})
	j.Save(ctx, Entry{ID: "e3", ChildID: "c1", FeelingName: "happy", Timestamp: now.Add(-time.Hour)})
	j.Save(ctx, Entry{ID: "e2", ChildID: "c1", FeelingName: "calm", Timestamp: now.Add(-5 * time.Hour)})

	entries := j.Entries(ctx, "c1")
	if len(entries) != 3 || entries[0].ID != "e3" || entries[1].ID != "e2" || entries[2].ID != "e1" {
		t.Errorf("order = %v", entries)
	}

	today, ok := j.TodaysEntry(ctx, "c1", now)
	if !ok || today.ID != "e3" {
		t.Errorf("TodaysEntry = %v, %v; want e3", today.ID, ok)
	}
	if _, ok := j.TodaysEntry(ctx, "c1", now.AddDate(0, 0, 1)); ok {
		t.Error("no entry expected tomorrow")
	}
	if _, ok := j.TodaysEntry(ctx, "c2", now); ok {
		t.Error("other child has no entries")
	}
}

func TestDeleteAndForget(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(time.Now())

	a := j.Save(ctx, Entry{ChildID: "c1", FeelingName: "happy"})
	j.Save(ctx, Entry{ChildID: "c1", FeelingName: "sad"})
	j.Save(ctx, Entry{ChildID: "c2", FeelingName: "calm"})

	if err := j.Delete(ctx, "c1", a.ID); err != nil {
		t.Fatal(err)
	}
	if err := j.Delete(ctx, "c1", a.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("second delete err = %v", err)
	}
	if n := len(j.Entries(ctx, "c1")); n != 1 {
		t.Errorf("c1 has %d entries, want 1", n)
	}

	j.Forget(ctx, "c1")
	if n := len(j.Entries(ctx, "c1")); n != 0 {
		t.Errorf("c1 has %d entries after Forget", n)
	}
	if n := len(j.Entries(ctx, "c2")); n != 1 {
		t.Errorf("sibling lost entries: %d", n)
	}
}

func TestCommonFeelings(t *testing.T) {
	fs := CommonFeelings()
	if len(fs) != 16 {
		t.Fatalf("got %d feelings, want 16", len(fs))
	}
	if fs[0].Name != "happy" || fs[15].Name != "tired" {
		t.Errorf("unexpected order: first %q last %q", fs[0].Name, fs[15].Name)
	}
	if EmojiFor("Frustrated") != "😤" {
		t.Errorf("EmojiFor(Frustrated) = %q", EmojiFor("Frustrated"))
	}
	if EmojiFor("bewildered") != "😊" {
		t.Errorf("unknown feeling emoji = %q", EmojiFor("bewildered"))
	}
}
