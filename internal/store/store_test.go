package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/bigfeelings/bigfeelings/internal/store/memory"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestWALModeFileDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}
}

// gatewayContract runs the behaviour every backend must share.
func gatewayContract(t *testing.T, gw Gateway) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := gw.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want absent", ok, err)
	}

	if err := gw.Set(ctx, "streak_a", []byte(`{"streak":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := gw.Set(ctx, "streak_a", []byte(`{"streak":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, ok, err := gw.Get(ctx, "streak_a")
	if err != nil || !ok {
		t.Fatalf("get after set: ok %v, err %v", ok, err)
	}
	if string(got) != `{"streak":2}` {
		t.Errorf("value = %s, want overwritten value", got)
	}

	for _, k := range []string{"streak_b", "journalEntries_a", "children"} {
		if err := gw.Set(ctx, k, []byte("x")); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	keys, err := gw.Keys(ctx, "streak_")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "streak_a" || keys[1] != "streak_b" {
		t.Errorf("Keys(streak_) = %v, want [streak_a streak_b]", keys)
	}

	if err := gw.Delete(ctx, "streak_a", "journalEntries_a", "never-existed"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, err := gw.Keys(ctx, "")
	if err != nil {
		t.Fatalf("keys all: %v", err)
	}
	if len(all) != 2 || all[0] != "children" || all[1] != "streak_b" {
		t.Errorf("remaining keys = %v, want [children streak_b]", all)
	}
}

func TestSQLiteGateway(t *testing.T) {
	gatewayContract(t, openTestStore(t))
}

func TestMemoryGateway(t *testing.T) {
	gatewayContract(t, memory.New())
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bf.db")
	gw, err := OpenBackend(BackendConfig{Backend: BackendSQLite, Path: path})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx := context.Background()
	if err := gw.Set(ctx, KeySelectedAge, []byte("7-9")); err != nil {
		t.Fatalf("set: %v", err)
	}
	gw.Close()

	gw, err = OpenBackend(BackendConfig{Path: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer gw.Close()
	v, ok, err := gw.Get(ctx, KeySelectedAge)
	if err != nil || !ok || string(v) != "7-9" {
		t.Errorf("after reopen got %q ok=%v err=%v", v, ok, err)
	}
}

func TestOpenBackendUnknown(t *testing.T) {
	if _, err := OpenBackend(BackendConfig{Backend: "etcd"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestRecordsDecodeOrDrop(t *testing.T) {
	ctx := context.Background()
	gw := memory.New()
	r := NewRecords(gw, zap.NewNop())

	gw.Set(ctx, KeyChildren, []byte("{not json"))

	var children []string
	if r.Load(ctx, KeyChildren, &children) {
		t.Fatal("Load of corrupt value reported success")
	}
	if len(children) != 0 {
		t.Errorf("children = %v, want empty", children)
	}
	if _, ok, _ := gw.Get(ctx, KeyChildren); ok {
		t.Error("corrupt key was not removed")
	}

	r.Save(ctx, KeyChildren, []string{"a", "b"})
	children = nil
	if !r.Load(ctx, KeyChildren, &children) || len(children) != 2 {
		t.Errorf("after save, Load = %v", children)
	}
}

func TestRecordsStrings(t *testing.T) {
	ctx := context.Background()
	r := NewRecords(memory.New(), nil)

	if _, ok := r.LoadString(ctx, KeySelectedChildID); ok {
		t.Fatal("expected missing selected child")
	}
	r.SaveString(ctx, KeySelectedChildID, "c1")
	if v, ok := r.LoadString(ctx, KeySelectedChildID); !ok || v != "c1" {
		t.Errorf("LoadString = %q, %v", v, ok)
	}
	r.Remove(ctx, KeySelectedChildID)
	if _, ok := r.LoadString(ctx, KeySelectedChildID); ok {
		t.Error("key survived Remove")
	}
}

func TestChildKeys(t *testing.T) {
	keys := ChildKeys("abc")
	want := []string{
		"completedStories_abc",
		"favoriteStories_abc",
		"achievements_abc",
		"streak_abc",
		"journalEntries_abc",
	}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestCheckFormat(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		stored  string
		present bool
		wantErr bool
		want    string
	}{
		{"fresh store is stamped", "", false, false, CurrentFormat},
		{"garbage is overwritten", "banana", true, false, CurrentFormat},
		{"older minor is upgraded", "v1.0.0-alpha", true, false, CurrentFormat},
		{"newer minor is accepted", "v1.3.0", true, false, "v1.3.0"},
		{"newer major is refused", "v2.0.0", true, true, "v2.0.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := memory.New()
			if tt.present {
				gw.Set(ctx, KeyFormatVersion, []byte(tt.stored))
			}
			err := CheckFormat(ctx, gw)
			if tt.wantErr {
				if !errors.Is(err, ErrFormatTooNew) {
					t.Fatalf("err = %v, want ErrFormatTooNew", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			v, _, _ := gw.Get(ctx, KeyFormatVersion)
			if string(v) != tt.want {
				t.Errorf("stored version = %q, want %q", v, tt.want)
			}
		})
	}
}
