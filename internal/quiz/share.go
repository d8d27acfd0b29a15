package quiz

import "fmt"

const shareDateLayout = "Jan 2, 2006 at 3:04 PM"

// ShareText formats a completed session for copying into a message.
func ShareText(s Session, summary string) string {
	score := s.Score()
	completed := s.StartDate
	if s.EndDate != nil {
		completed = *s.EndDate
	}
	return fmt.Sprintf("Quiz Results - %s\nCompleted: %s\n\nScore: %s (%d%%)\nGreat Choices: %d/%d\n\n%s",
		s.AgeRange.DisplayName(),
		completed.Format(shareDateLayout),
		score.Grade(),
		int(score.GoodPercentage()),
		score.Good,
		score.Total,
		summary,
	)
}
