package child

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/store"
	"github.com/bigfeelings/bigfeelings/internal/store/memory"
)

func intp(v int) *int { return &v }

func TestAgeBand(t *testing.T) {
	if _, ok := (Child{}).AgeBand(); ok {
		t.Error("child without age should have no band")
	}
	tests := []struct {
		age  int
		want catalog.AgeBand
	}{
		{5, catalog.AgeFourToSix},
		{8, catalog.AgeSevenToNine},
		{11, catalog.AgeTenToTwelve},
		{2, catalog.AgeSevenToNine},
		{15, catalog.AgeSevenToNine},
	}
	for _, tt := range tests {
		band, ok := Child{Age: intp(tt.age)}.AgeBand()
		if !ok || band != tt.want {
			t.Errorf("age %d -> %s, %v; want %s", tt.age, band, ok, tt.want)
		}
	}
}

func TestRepoCRUD(t *testing.T) {
	ctx := context.Background()
	gw := memory.New()
	r := NewRepo(store.NewRecords(gw, nil), nil)
	t0 := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	if _, err := r.Save(ctx, Child{ID: "c1", Name: "   "}, t0); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("blank name err = %v", err)
	}

	c, err := r.Save(ctx, Child{ID: "c1", Name: " Mia ", Age: intp(5)}, t0)
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "Mia" || !c.CreatedAt.Equal(t0) {
		t.Errorf("saved child = %+v", c)
	}
	r.Save(ctx, Child{ID: "c2", Name: "Leo"}, t0)

	t1 := t0.Add(time.Hour)
	updated, err := r.Save(ctx, Child{ID: "c1", Name: "Mia B", Age: intp(7)}, t1)
	if err != nil {
		t.Fatal(err)
	}
	if !updated.CreatedAt.Equal(t0) || !updated.UpdatedAt.Equal(t1) {
		t.Errorf("timestamps after update = %v / %v", updated.CreatedAt, updated.UpdatedAt)
	}

	list := r.List(ctx)
	if len(list) != 2 || list[0].Name != "Mia B" || list[1].ID != "c2" {
		t.Errorf("list = %+v", list)
	}

	if err := r.Delete(ctx, "c1"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get(ctx, "c1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete err = %v", err)
	}
	if err := r.Delete(ctx, "c1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestCorruptChildrenDropped(t *testing.T) {
	ctx := context.Background()
	gw := memory.New()
	gw.Set(ctx, store.KeyChildren, []byte(`[{"id": 12`))
	r := NewRepo(store.NewRecords(gw, nil), nil)

	if got := r.List(ctx); len(got) != 0 {
		t.Errorf("List = %v, want empty", got)
	}
	if _, ok, _ := gw.Get(ctx, store.KeyChildren); ok {
		t.Error("corrupt children key was not removed")
	}
}
