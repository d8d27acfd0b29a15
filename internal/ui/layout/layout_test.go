package layout

import (
	"strings"
	"testing"
)

func TestRenderHeader_ShowsChildAndStreak(t *testing.T) {
	h := RenderHeader("Home", "Mia", 3, 80)
	if !strings.Contains(h, "Mia") {
		t.Error("header should show the child name")
	}
	if !strings.Contains(h, "3 days") {
		t.Error("header should show the streak")
	}
}

func TestRenderHeader_NoChild(t *testing.T) {
	h := RenderHeader("Home", "", 0, 80)
	if !strings.Contains(h, "no child selected") {
		t.Error("header should say no child is selected")
	}
}

func TestStreakLabel(t *testing.T) {
	if got := streakLabel(1); !strings.HasSuffix(got, "1 day") {
		t.Errorf("streakLabel(1) = %q", got)
	}
	if got := streakLabel(0); !strings.HasSuffix(got, "0 days") {
		t.Errorf("streakLabel(0) = %q", got)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("narrow terminal should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}

func TestColumn(t *testing.T) {
	if got := Column(200); got != 72 {
		t.Errorf("Column(200) = %d, want 72", got)
	}
	if got := Column(10); got != 20 {
		t.Errorf("Column(10) = %d, want 20", got)
	}
}
