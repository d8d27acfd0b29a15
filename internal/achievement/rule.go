package achievement

import (
	"strings"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
)

// Kind tags the progress calculation a rule performs.
type Kind string

const (
	KindCount            Kind = "count"
	KindCappedCount      Kind = "capped_count"
	KindFeelingCount     Kind = "feeling_count"
	KindDistinctFeelings Kind = "distinct_feelings"
	KindComposite        Kind = "composite"
	KindStreak           Kind = "streak"
)

// Source is what a count rule counts.
type Source string

const (
	SourceStories   Source = "stories"
	SourceFavorites Source = "favorites"
	SourceQuizzes   Source = "quizzes"
)

// Condition is the boolean behind a composite rule.
type Condition string

const (
	// ConditionStoryAndQuiz holds once the child has a completed story and a
	// completed quiz.
	ConditionStoryAndQuiz Condition = "story_and_quiz"
	// ConditionAverageAtLeast holds when the mean good percentage over
	// completed quizzes reaches Threshold.
	ConditionAverageAtLeast Condition = "average_at_least"
)

// Rule is a tagged variant; only the fields for its Kind are read.
type Rule struct {
	Kind Kind

	// Count and capped count.
	Source   Source
	MinScore float64 // quizzes only; 0 counts every completed quiz

	// Feeling count: case-insensitive substrings of the story feeling.
	Keywords []string

	// Composite.
	Condition Condition
	Threshold float64
}

// History is everything rules are evaluated against, for one child.
type History struct {
	// CompletedStoryIDs is the union of explicit completions and quiz answers.
	CompletedStoryIDs []string
	Favorites         []string
	// Quizzes holds completed sessions only.
	Quizzes       []quiz.Session
	CurrentStreak int
	// Lookup resolves story ids to catalog entries; ids it cannot resolve
	// are skipped by feeling rules.
	Lookup func(id string) (catalog.Story, bool)
}

func (h History) completedStories() []catalog.Story {
	if h.Lookup == nil {
		return nil
	}
	var out []catalog.Story
	for _, id := range h.CompletedStoryIDs {
		if s, ok := h.Lookup(id); ok {
			out = append(out, s)
		}
	}
	return out
}

func (h History) quizzesScoring(floor float64) int {
	n := 0
	for _, q := range h.Quizzes {
		if q.Score().GoodPercentage() >= floor {
			n++
		}
	}
	return n
}

func (h History) count(src Source, minScore float64) int {
	switch src {
	case SourceStories:
		return len(h.CompletedStoryIDs)
	case SourceFavorites:
		return len(h.Favorites)
	case SourceQuizzes:
		return h.quizzesScoring(minScore)
	default:
		return 0
	}
}

// Evaluate computes progress for rule against h.
func Evaluate(rule Rule, h History, requirement int) int {
	switch rule.Kind {
	case KindCount:
		return h.count(rule.Source, rule.MinScore)

	case KindCappedCount:
		return min(h.count(rule.Source, rule.MinScore), requirement)

	case KindFeelingCount:
		n := 0
		for _, s := range h.completedStories() {
			if matchesAny(s.Feeling, rule.Keywords) {
				n++
			}
		}
		return n

	case KindDistinctFeelings:
		seen := make(map[string]bool)
		for _, s := range h.completedStories() {
			seen[strings.ToLower(s.Feeling)] = true
		}
		return len(seen)

	case KindComposite:
		if evalCondition(rule, h) {
			return 1
		}
		return 0

	case KindStreak:
		return h.CurrentStreak

	default:
		return 0
	}
}

func evalCondition(rule Rule, h History) bool {
	switch rule.Condition {
	case ConditionStoryAndQuiz:
		return len(h.CompletedStoryIDs) > 0 && len(h.Quizzes) > 0
	case ConditionAverageAtLeast:
		if len(h.Quizzes) == 0 {
			return false
		}
		var total float64
		for _, q := range h.Quizzes {
			total += q.Score().GoodPercentage()
		}
		return total/float64(len(h.Quizzes)) >= rule.Threshold
	default:
		return false
	}
}

func matchesAny(feeling string, keywords []string) bool {
	f := strings.ToLower(feeling)
	for _, k := range keywords {
		if strings.Contains(f, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
