package quiz

import "sort"

// GrowthOverview aggregates a child's completed sessions.
type GrowthOverview struct {
	Sessions           int      `json:"sessions"`
	AverageScore       float64  `json:"averageScore"`
	Summary            string   `json:"summary"`
	StrugglingFeelings []string `json:"strugglingFeelings"`
}

const (
	minFeelingAttempts  = 2
	strugglingThreshold = 0.75
	maxStruggling       = 5
)

// Overview summarizes sessions for childName. Callers pass completed sessions
// only.
func Overview(childName string, sessions []Session) GrowthOverview {
	o := GrowthOverview{Sessions: len(sessions)}
	if len(sessions) == 0 {
		o.Summary = closing(childName, 0)
		return o
	}

	var total float64
	var answers []Answer
	for _, s := range sessions {
		total += s.Score().GoodPercentage()
		answers = append(answers, s.Answers...)
	}
	o.AverageScore = total / float64(len(sessions))
	o.Summary = closing(childName, o.AverageScore)
	o.StrugglingFeelings = strugglingFeelings(answers)
	return o
}

// strugglingFeelings picks the feelings with the lowest success rate: at least
// two attempts, the five weakest, then only those under 75%.
func strugglingFeelings(answers []Answer) []string {
	type rate struct {
		feeling string
		success float64
	}
	var rates []rate
	for _, t := range tallyFeelings(answers) {
		if t.Total < minFeelingAttempts {
			continue
		}
		rates = append(rates, rate{t.Feeling, float64(t.Good) / float64(t.Total)})
	}
	sort.SliceStable(rates, func(i, j int) bool { return rates[i].success < rates[j].success })
	if len(rates) > maxStruggling {
		rates = rates[:maxStruggling]
	}

	var out []string
	for _, r := range rates {
		if r.success < strugglingThreshold {
			out = append(out, r.feeling)
		}
	}
	return out
}
