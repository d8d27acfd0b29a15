package quiz

import "github.com/bigfeelings/bigfeelings/internal/catalog"

// Score counts answers by choice quality.
type Score struct {
	Total     int `json:"total"`
	Good      int `json:"good"`
	Okay      int `json:"okay"`
	Bad       int `json:"bad"`
	Unrelated int `json:"unrelated"`
}

// NewScore tallies answers.
func NewScore(answers []Answer) Score {
	var s Score
	for _, a := range answers {
		switch a.SelectedChoiceType {
		case catalog.ChoiceGood:
			s.Good++
		case catalog.ChoiceOkay:
			s.Okay++
		case catalog.ChoiceBad:
			s.Bad++
		case catalog.ChoiceUnrelated:
			s.Unrelated++
		default:
			continue
		}
		s.Total++
	}
	return s
}

// GoodPercentage is the share of good answers in [0,100]; 0 for no answers.
func (s Score) GoodPercentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Good) / float64(s.Total) * 100
}

// Grade returns the banded grade for the good percentage.
func (s Score) Grade() Grade {
	return GradeFor(s.GoodPercentage())
}
