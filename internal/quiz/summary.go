package quiz

import (
	"fmt"
	"strings"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
)

const (
	overallHeader  = "📊 **Overall Performance**\n\n"
	strengthHeader = "🌟 **Strengths**\n\n"
	growthHeader   = "💡 **Areas for Growth**\n\n"
	insightHeader  = "📈 **Emotional Context Insights**\n\n"
	closingPrefix  = "✨ **Summary**: "
)

// feelingTally counts answers for one feeling.
type feelingTally struct {
	Feeling string
	Total   int
	Good    int
}

// tallyFeelings groups answers by feeling in first-occurrence order.
func tallyFeelings(answers []Answer) []feelingTally {
	index := make(map[string]int)
	var out []feelingTally
	for _, a := range answers {
		i, ok := index[a.Feeling]
		if !ok {
			i = len(out)
			index[a.Feeling] = i
			out = append(out, feelingTally{Feeling: a.Feeling})
		}
		out[i].Total++
		if a.SelectedChoiceType == catalog.ChoiceGood {
			out[i].Good++
		}
	}
	return out
}

// distinctFeelings returns the feelings of answers matching keep, first
// occurrence first.
func distinctFeelings(answers []Answer, keep func(Answer) bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range answers {
		if !keep(a) || seen[a.Feeling] {
			continue
		}
		seen[a.Feeling] = true
		out = append(out, a.Feeling)
	}
	return out
}

func isGood(a Answer) bool { return a.SelectedChoiceType == catalog.ChoiceGood }

// Summarize renders the parent-facing narrative for a session. Output depends
// only on the answers and is identical for identical input.
func Summarize(s Session) string {
	score := s.Score()

	var b strings.Builder
	b.WriteString(overallSection(score))
	b.WriteString("\n\n")
	b.WriteString(strengthsSection(s.Answers, score))
	if growth := growthSection(s.Answers, score); growth != "" {
		b.WriteString("\n\n")
		b.WriteString(growth)
	}
	if insights := insightsSection(s.Answers); insights != "" {
		b.WriteString("\n\n")
		b.WriteString(insights)
	}
	b.WriteString("\n\n")
	b.WriteString(closingPrefix)
	b.WriteString(closing("This child", score.GoodPercentage()))
	return b.String()
}

func overallSection(score Score) string {
	pct := int(score.GoodPercentage())
	section := overallHeader +
		fmt.Sprintf("Completed %d scenarios with %d great choices (%d%%). ", score.Total, score.Good, pct)

	switch score.Grade() {
	case GradeExcellent:
		section += "Outstanding work! The child consistently demonstrates strong emotional decision-making skills. Continue reinforcing these positive choices."
	case GradeGood:
		section += "Good progress! The child shows understanding of healthy coping strategies. Continue practicing these skills together to build confidence."
	case GradeFair:
		section += "The child is learning to navigate emotional situations. Consistent practice and gentle guidance will help them continue to improve."
	default:
		section += "The child is beginning their journey in emotional learning. Patient, consistent practice and supportive guidance are essential to help build these important skills."
	}
	return section
}

func strengthsSection(answers []Answer, score Score) string {
	var lines []string

	if score.GoodPercentage() >= 70 {
		lines = append(lines, "• Consistently makes healthy choices in emotional situations")
	}
	if score.Good > 0 && len(distinctFeelings(answers, isGood)) >= 3 {
		lines = append(lines, "• Shows understanding across multiple emotional contexts")
	}
	if score.Okay > 0 && score.Bad == 0 && score.Unrelated == 0 {
		lines = append(lines, "• Demonstrates thoughtful consideration of choices")
	}

	// Strict > keeps the earliest feeling on ties.
	var top feelingTally
	for _, t := range tallyFeelings(answers) {
		if t.Good > top.Good {
			top = t
		}
	}
	if top.Good >= 2 {
		lines = append(lines, fmt.Sprintf("• Particularly strong in handling \"%s\" situations", top.Feeling))
	}

	if len(lines) == 0 {
		lines = append(lines, "• Completed all scenarios, showing engagement and willingness to learn")
	}
	return strengthHeader + strings.Join(lines, "\n") + "\n"
}

func growthSection(answers []Answer, score Score) string {
	var lines []string

	if score.Bad > 0 {
		bad := distinctFeelings(answers, func(a Answer) bool {
			return a.SelectedChoiceType == catalog.ChoiceBad
		})
		if len(bad) > 0 {
			lines = append(lines, "• Opportunities to explore together: "+strings.Join(bad, ", "))
		}
	}
	if score.Unrelated > 0 {
		lines = append(lines, "• Sometimes needs help focusing on what's most important in each situation")
	}
	if score.Okay > score.Good {
		lines = append(lines, "• Shows good thinking by considering options, and with practice can learn to identify the most helpful choices")
	}
	if score.GoodPercentage() < 50 {
		hard := distinctFeelings(answers, func(a Answer) bool { return !isGood(a) })
		if len(hard) > 3 {
			hard = hard[:3]
		}
		if len(hard) > 0 {
			lines = append(lines, "• Needs consistent practice and support with: "+strings.Join(hard, ", "))
		}
	}

	if len(lines) == 0 {
		return ""
	}
	return growthHeader + strings.Join(lines, "\n") + "\n"
}

func insightsSection(answers []Answer) string {
	var lines []string
	for _, t := range tallyFeelings(answers) {
		if t.Total < 2 {
			continue
		}
		pct := float64(t.Good) / float64(t.Total) * 100
		switch {
		case pct >= 75:
			lines = append(lines, fmt.Sprintf("• Strong performance with \"%s\" scenarios (%d/%d great choices)", t.Feeling, t.Good, t.Total))
		case pct < 50:
			lines = append(lines, fmt.Sprintf("• \"%s\" scenarios offer great learning opportunities (%d/%d great choices)", t.Feeling, t.Good, t.Total))
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return insightHeader + strings.Join(lines, "\n")
}

// closing returns the closing sentence with subject as its grammatical
// subject, banded on the truncated percentage.
func closing(subject string, pct float64) string {
	switch p := int(pct); {
	case p >= 80:
		return subject + " demonstrates excellent emotional intelligence and decision-making. Continue providing consistent opportunities to practice these skills in real-life situations to maintain this strong foundation."
	case p >= 60:
		return subject + " shows good understanding of emotional regulation. With continued, consistent practice and supportive guidance, they will further develop these important life skills."
	case p >= 40:
		return subject + " is learning to navigate emotions and make healthy choices. Regular, structured practice with these scenarios and real-world application is needed to support their continued growth."
	default:
		return subject + " is beginning to learn about emotions and healthy coping strategies. Patient but consistent guidance, repeated practice, and celebrating small wins are essential to help build their confidence and skills."
	}
}
