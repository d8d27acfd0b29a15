package coach

import (
	"fmt"
	"strings"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
)

const systemPrompt = `You help parents talk with their young children about feelings. The child has just finished a short quiz of stories in which an animal character feels something and the child picks how the character could respond. You suggest warm, open questions the parent can ask. Never shame the child, never mention scores or grades, and keep language simple enough for the child's age.`

// buildUserMessage describes the quiz without the child's name; only the
// age band and the answers leave the device.
func buildUserMessage(s quiz.Session) string {
	var b strings.Builder

	score := s.Score()
	fmt.Fprintf(&b, "Child's age range: %s\n", s.AgeRange.DisplayName())
	fmt.Fprintf(&b, "Stories answered: %d (%d caring choices, %d okay, %d unkind, %d off-topic)\n",
		score.Total, score.Good, score.Okay, score.Bad, score.Unrelated)

	b.WriteString("\nAnswers:\n")
	for _, a := range s.Answers {
		fmt.Fprintf(&b, "- %q: the character felt %s; the child's response was %s\n",
			a.StoryTitle, strings.ToLower(a.Feeling), describe(a))
	}

	fmt.Fprintf(&b, `
Instructions:
Write exactly %d conversation starters the parent can use today.
1. Each is one question addressed to the child, under 25 words.
2. Tie at least one question to a feeling the child found hard, if any.
3. Celebrate one caring choice if there was one.
4. Ask about the child's own life, not only the story characters.`, StarterCount)

	return b.String()
}

func describe(a quiz.Answer) string {
	switch a.SelectedChoiceType {
	case catalog.ChoiceGood:
		return "caring"
	case catalog.ChoiceOkay:
		return "partly helpful"
	case catalog.ChoiceBad:
		return "unkind"
	default:
		return "off-topic"
	}
}
