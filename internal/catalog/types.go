package catalog

import "fmt"

// AgeBand is one of the three fixed reader age ranges.
type AgeBand string

const (
	AgeFourToSix   AgeBand = "4-6"
	AgeSevenToNine AgeBand = "7-9"
	AgeTenToTwelve AgeBand = "10-12"
)

// AgeBands lists every band in display order.
func AgeBands() []AgeBand {
	return []AgeBand{AgeFourToSix, AgeSevenToNine, AgeTenToTwelve}
}

// DisplayName returns the human-readable band label.
func (b AgeBand) DisplayName() string {
	switch b {
	case AgeFourToSix:
		return "Ages 4-6"
	case AgeSevenToNine:
		return "Ages 7-9"
	case AgeTenToTwelve:
		return "Ages 10-12"
	default:
		return string(b)
	}
}

// Valid reports whether b is one of the known bands.
func (b AgeBand) Valid() bool {
	switch b {
	case AgeFourToSix, AgeSevenToNine, AgeTenToTwelve:
		return true
	}
	return false
}

// ParseAgeBand accepts "4-6", "7-9" or "10-12".
func ParseAgeBand(s string) (AgeBand, error) {
	b := AgeBand(s)
	if !b.Valid() {
		return "", fmt.Errorf("unknown age band %q (want 4-6, 7-9 or 10-12)", s)
	}
	return b, nil
}

// BandForAge maps a numeric age to a band. Ages outside 4-12 fall back to 7-9.
func BandForAge(age int) AgeBand {
	switch {
	case age >= 4 && age <= 6:
		return AgeFourToSix
	case age >= 7 && age <= 9:
		return AgeSevenToNine
	case age >= 10 && age <= 12:
		return AgeTenToTwelve
	default:
		return AgeSevenToNine
	}
}

// ChoiceID labels a choice within a story.
type ChoiceID string

const (
	ChoiceA ChoiceID = "a"
	ChoiceB ChoiceID = "b"
	ChoiceC ChoiceID = "c"
	ChoiceD ChoiceID = "d"
)

// ChoiceType is the quality tag of a choice.
type ChoiceType string

const (
	ChoiceGood      ChoiceType = "good"
	ChoiceOkay      ChoiceType = "okay"
	ChoiceBad       ChoiceType = "bad"
	ChoiceUnrelated ChoiceType = "unrelated"
)

// Title is the feedback heading shown after a choice.
func (t ChoiceType) Title() string {
	switch t {
	case ChoiceGood:
		return "Great Choice!"
	case ChoiceOkay:
		return "Almost There!"
	case ChoiceBad:
		return "Let's Try a Different Way"
	case ChoiceUnrelated:
		return "Let's Focus on This"
	default:
		return string(t)
	}
}

// Emoji returns the feedback icon for the choice type.
func (t ChoiceType) Emoji() string {
	switch t {
	case ChoiceGood:
		return "🌟"
	case ChoiceOkay:
		return "🤔"
	default:
		return "💭"
	}
}

// Choice is one branch of a story.
type Choice struct {
	ID          ChoiceID   `json:"id"`
	Text        string     `json:"text"`
	Type        ChoiceType `json:"type"`
	Explanation string     `json:"explanation"`
}

// Story is an immutable catalog scenario.
type Story struct {
	ID            string   `json:"id"`
	AgeRange      AgeBand  `json:"ageRange"`
	Animal        string   `json:"animal"`
	AnimalEmoji   string   `json:"animalEmoji"`
	Title         string   `json:"title"`
	Feeling       string   `json:"feeling"`
	Story         string   `json:"story"`
	ImagePrompt   string   `json:"imagePrompt"`
	Choices       []Choice `json:"choices"`
	EndingMessage string   `json:"endingMessage"`
}

// Choice returns the choice with the given id.
func (s Story) Choice(id ChoiceID) (Choice, bool) {
	for _, c := range s.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}
