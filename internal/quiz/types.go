package quiz

import (
	"time"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
)

// Answer records the child's pick for one story. Title and feeling are
// copied from the story so old sessions stay readable if the catalog changes.
type Answer struct {
	StoryID            string             `json:"storyId"`
	StoryTitle         string             `json:"storyTitle"`
	Feeling            string             `json:"feeling"`
	SelectedChoiceID   catalog.ChoiceID   `json:"selectedChoiceId"`
	SelectedChoiceType catalog.ChoiceType `json:"selectedChoiceType"`
	Timestamp          time.Time          `json:"timestamp"`
}

// Session is one run through a set of stories. A nil EndDate means the
// session is still in progress. An empty ChildID marks a session saved before
// child profiles existed.
type Session struct {
	ID        string          `json:"id"`
	AgeRange  catalog.AgeBand `json:"ageRange"`
	StartDate time.Time       `json:"startDate"`
	EndDate   *time.Time      `json:"endDate,omitempty"`
	Answers   []Answer        `json:"answers"`
	ChildID   string          `json:"childId,omitempty"`
}

// IsCompleted reports whether the session has ended.
func (s Session) IsCompleted() bool { return s.EndDate != nil }

// TotalStories is the number of answered stories.
func (s Session) TotalStories() int { return len(s.Answers) }

// Score reduces the answers to a Score.
func (s Session) Score() Score { return NewScore(s.Answers) }

// Grade is the banded label for a good-choice percentage.
type Grade string

const (
	GradeExcellent    Grade = "Excellent"
	GradeGood         Grade = "Good"
	GradeFair         Grade = "Fair"
	GradeKeepLearning Grade = "Keep Learning"
)

// GradeFor bands a percentage: [80,∞) Excellent, [60,80) Good, [40,60) Fair,
// everything else Keep Learning.
func GradeFor(pct float64) Grade {
	switch {
	case pct >= 80:
		return GradeExcellent
	case pct >= 60:
		return GradeGood
	case pct >= 40:
		return GradeFair
	default:
		return GradeKeepLearning
	}
}
