package achievement

import (
	"testing"
	"time"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
)

func completedQuiz(types ...catalog.ChoiceType) quiz.Session {
	end := time.Now()
	s := quiz.Session{EndDate: &end}
	for i, t := range types {
		s.Answers = append(s.Answers, quiz.Answer{StoryID: string(rune('a' + i)), SelectedChoiceType: t})
	}
	return s
}

func lookupOf(stories ...catalog.Story) func(string) (catalog.Story, bool) {
	return catalog.FromStories(stories).ByID
}

func mustDef(t *testing.T, id string) Definition {
	t.Helper()
	d, ok := Lookup(id)
	if !ok {
		t.Fatalf("no definition %q", id)
	}
	return d
}

func TestCatalogShape(t *testing.T) {
	defs := Catalog()
	if len(defs) != 25 {
		t.Fatalf("catalog has %d definitions, want 25", len(defs))
	}
	ids := make(map[string]bool)
	perCategory := make(map[Category]int)
	for _, d := range defs {
		if ids[d.ID] {
			t.Errorf("duplicate id %q", d.ID)
		}
		ids[d.ID] = true
		perCategory[d.Category]++
		if d.Requirement <= 0 {
			t.Errorf("%s: requirement %d", d.ID, d.Requirement)
		}
	}
	want := map[Category]int{
		CategoryStories: 6, CategoryQuizzes: 6, CategoryStreaks: 4,
		CategoryFeelings: 4, CategoryMilestones: 5,
	}
	for c, n := range want {
		if perCategory[c] != n {
			t.Errorf("%s has %d definitions, want %d", c, perCategory[c], n)
		}
	}
}

func TestFavoriteFanIgnoresCompletedStories(t *testing.T) {
	h := History{CompletedStoryIDs: []string{"s1", "s2", "s3"}}
	d := mustDef(t, "favorite_fan")
	if got := Evaluate(d.Rule, h, d.Requirement); got != 0 {
		t.Errorf("favorite_fan progress = %d, want 0", got)
	}
}

func TestEvaluateCounts(t *testing.T) {
	h := History{
		CompletedStoryIDs: []string{"s1", "s2"},
		Favorites:         []string{"s1"},
		Quizzes: []quiz.Session{
			completedQuiz(catalog.ChoiceGood, catalog.ChoiceGood),                    // 100
			completedQuiz(catalog.ChoiceGood, catalog.ChoiceGood, catalog.ChoiceBad), // 66
			completedQuiz(catalog.ChoiceGood, catalog.ChoiceBad),                     // 50
			completedQuiz(catalog.ChoiceGood, catalog.ChoiceGood, catalog.ChoiceGood, catalog.ChoiceGood, catalog.ChoiceOkay), // 80
		},
	}
	tests := []struct {
		id   string
		want int
	}{
		{"bookworm", 2},
		{"favorite_fan", 1},
		{"quiz_rookie", 4},
		{"perfect_score", 1},
		{"high_achiever", 2},
		{"consistent_learner", 3},
		{"all_rounder", 1},
		{"rising_star", 1},
	}
	for _, tt := range tests {
		d := mustDef(t, tt.id)
		if got := Evaluate(d.Rule, h, d.Requirement); got != tt.want {
			t.Errorf("%s = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestCappedCountStopsAtRequirement(t *testing.T) {
	var quizzes []quiz.Session
	for i := 0; i < 8; i++ {
		quizzes = append(quizzes, completedQuiz(catalog.ChoiceGood))
	}
	h := History{Quizzes: quizzes}

	d := mustDef(t, "high_achiever")
	if got := Evaluate(d.Rule, h, d.Requirement); got != 5 {
		t.Errorf("high_achiever = %d, want capped 5", got)
	}
	// perfect_score is uncapped.
	d = mustDef(t, "perfect_score")
	if got := Evaluate(d.Rule, h, d.Requirement); got != 8 {
		t.Errorf("perfect_score = %d, want 8", got)
	}
}

func TestFeelingRules(t *testing.T) {
	stories := []catalog.Story{
		{ID: "s1", Feeling: "Scared"},
		{ID: "s2", Feeling: "Fearful"},
		{ID: "s3", Feeling: "ANGRY"},
		{ID: "s4", Feeling: "angry"},
		{ID: "s5", Feeling: "Nervous"},
		{ID: "s6", Feeling: "Proud"},
	}
	h := History{
		CompletedStoryIDs: []string{"s1", "s2", "s3", "s4", "s5", "unknown"},
		Lookup:            lookupOf(stories...),
	}

	tests := []struct {
		id   string
		want int
	}{
		{"brave_heart", 2},
		{"calm_mind", 2},
		{"worry_warrior", 1},
		{"social_star", 0},
		{"emotional_explorer", 4}, // scared, fearful, angry, nervous
	}
	for _, tt := range tests {
		d := mustDef(t, tt.id)
		if got := Evaluate(d.Rule, h, d.Requirement); got != tt.want {
			t.Errorf("%s = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestCompositeRules(t *testing.T) {
	allRounder := mustDef(t, "all_rounder")
	rising := mustDef(t, "rising_star")

	storiesOnly := History{CompletedStoryIDs: []string{"s1"}}
	if Evaluate(allRounder.Rule, storiesOnly, 1) != 0 {
		t.Error("all_rounder without a quiz")
	}
	if Evaluate(rising.Rule, storiesOnly, 1) != 0 {
		t.Error("rising_star without quizzes")
	}

	low := History{Quizzes: []quiz.Session{
		completedQuiz(catalog.ChoiceGood, catalog.ChoiceBad, catalog.ChoiceBad), // 33
		completedQuiz(catalog.ChoiceGood, catalog.ChoiceBad),                    // 50
	}}
	if Evaluate(rising.Rule, low, 1) != 0 {
		t.Error("average below 50 should not reach rising_star")
	}
}

func TestStreakRule(t *testing.T) {
	d := mustDef(t, "week_warrior")
	if got := Evaluate(d.Rule, History{CurrentStreak: 4}, d.Requirement); got != 4 {
		t.Errorf("streak progress = %d, want 4", got)
	}
}

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		a    Achievement
		want float64
	}{
		{Achievement{Requirement: 4, CurrentProgress: 1}, 25},
		{Achievement{Requirement: 4, CurrentProgress: 9}, 100},
		{Achievement{Requirement: 0, CurrentProgress: 9}, 0},
	}
	for _, tt := range tests {
		if got := tt.a.ProgressPercentage(); got != tt.want {
			t.Errorf("ProgressPercentage(%+v) = %v, want %v", tt.a, got, tt.want)
		}
	}
}

// Every achievement driven by story content must be earnable from the bundled
// stories alone.
func TestBundledStoriesReachContentAchievements(t *testing.T) {
	stories := catalog.Default(nil)
	if stories.HasError() {
		t.Fatalf("bundled catalog failed: %v", stories.Err())
	}
	var ids []string
	for _, s := range stories.All() {
		ids = append(ids, s.ID)
	}
	everything := History{CompletedStoryIDs: ids, Favorites: ids, Lookup: stories.ByID}

	for _, d := range Catalog() {
		switch d.Rule.Kind {
		case KindFeelingCount, KindDistinctFeelings:
		case KindCount, KindCappedCount:
			if d.Rule.Source == SourceQuizzes {
				continue
			}
		default:
			continue
		}
		if got := Evaluate(d.Rule, everything, d.Requirement); got < d.Requirement {
			t.Errorf("%s: best possible progress %d, requirement %d", d.ID, got, d.Requirement)
		}
	}
}
