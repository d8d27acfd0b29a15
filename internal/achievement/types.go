package achievement

import "time"

// Category groups achievements for display.
type Category string

const (
	CategoryStories    Category = "stories"
	CategoryQuizzes    Category = "quizzes"
	CategoryStreaks    Category = "streaks"
	CategoryFeelings   Category = "feelings"
	CategoryMilestones Category = "milestones"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryStories, CategoryQuizzes, CategoryStreaks, CategoryFeelings, CategoryMilestones}
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryStories:
		return "Stories"
	case CategoryQuizzes:
		return "Quizzes"
	case CategoryStreaks:
		return "Streaks"
	case CategoryFeelings:
		return "Feelings"
	case CategoryMilestones:
		return "Milestones"
	default:
		return string(c)
	}
}

// Icon returns the terminal icon for the category.
func (c Category) Icon() string {
	switch c {
	case CategoryStories:
		return "📚"
	case CategoryQuizzes:
		return "🎯"
	case CategoryStreaks:
		return "🔥"
	case CategoryFeelings:
		return "💗"
	case CategoryMilestones:
		return "🏆"
	default:
		return "✦"
	}
}

// Definition is a static catalog entry.
type Definition struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Category    Category
	Requirement int
	Rule        Rule
}

// Achievement is a definition plus one child's state. Unlocking is one-way.
type Achievement struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Icon            string     `json:"icon"`
	Category        Category   `json:"category"`
	Requirement     int        `json:"requirement"`
	CurrentProgress int        `json:"currentProgress"`
	IsUnlocked      bool       `json:"isUnlocked"`
	UnlockedDate    *time.Time `json:"unlockedDate,omitempty"`
}

// ProgressPercentage is progress toward the requirement, capped at 100.
func (a Achievement) ProgressPercentage() float64 {
	if a.Requirement <= 0 {
		return 0
	}
	return min(100, float64(a.CurrentProgress)/float64(a.Requirement)*100)
}

// Summary counts unlocked achievements.
type Summary struct {
	Unlocked int `json:"unlocked"`
	Total    int `json:"total"`
}

// Summarize counts achievements.
func Summarize(all []Achievement) Summary {
	s := Summary{Total: len(all)}
	for _, a := range all {
		if a.IsUnlocked {
			s.Unlocked++
		}
	}
	return s
}

// ByCategory splits achievements by category, keeping catalog order.
func ByCategory(all []Achievement) map[Category][]Achievement {
	out := make(map[Category][]Achievement)
	for _, a := range all {
		out[a.Category] = append(out[a.Category], a)
	}
	return out
}
