package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
	"github.com/bigfeelings/bigfeelings/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview [story id...]",
	Short: "Play through stories in the terminal (no database)",
	Long: `Read stories and answer them from the keyboard.

Nothing is saved: no child, no streak, no achievements. Useful for checking
a custom story file before pointing the config at it.`,
	Annotations: map[string]string{annotationNoServices: "true"},
	RunE:        runPreview,
}

func init() {
	previewCmd.Flags().String("file", "", "Story JSON file (default: built-in stories)")
	previewCmd.Flags().String("age", "4-6", "Age group when no story ids are given")
}

func runPreview(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	ageVal, _ := cmd.Flags().GetString("age")

	stories := catalog.Default(zap.NewNop())
	if file != "" {
		stories = catalog.Open(file, zap.NewNop())
	}
	if err := stories.Err(); err != nil {
		return fmt.Errorf("load stories: %w", err)
	}

	var picked []catalog.Story
	if len(args) > 0 {
		for _, id := range args {
			s, err := stories.Get(id)
			if err != nil {
				return err
			}
			picked = append(picked, s)
		}
	} else {
		band, err := catalog.ParseAgeBand(ageVal)
		if err != nil {
			return err
		}
		picked = stories.ByAgeBand(band)
	}
	if len(picked) == 0 {
		return fmt.Errorf("no stories to preview")
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	var answers []quiz.Answer

	for i, s := range picked {
		fmt.Fprintf(out(cmd), "── Story %d/%d ──\n", i+1, len(picked))
		printStory(cmd, s)

		var choice catalog.Choice
		for {
			fmt.Fprint(out(cmd), "\nYour choice: ")
			if !scanner.Scan() {
				fmt.Fprintln(out(cmd), "\n(input closed)")
				return previewSummary(cmd, answers)
			}
			in := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if in == "" {
				break
			}
			c, ok := s.Choice(catalog.ChoiceID(in))
			if ok {
				choice = c
				break
			}
			fmt.Fprintln(out(cmd), "Pick one of the letters above.")
		}
		if choice.ID == "" {
			fmt.Fprintln(out(cmd), "(skipped)")
			fmt.Fprintln(out(cmd))
			continue
		}

		answers = append(answers, quiz.Answer{
			StoryID:            s.ID,
			StoryTitle:         s.Title,
			Feeling:            s.Feeling,
			SelectedChoiceID:   choice.ID,
			SelectedChoiceType: choice.Type,
		})
		fmt.Fprintf(out(cmd), "%s %s\n%s\n", choice.Type.Emoji(), choice.Type.Title(), choice.Explanation)
		fmt.Fprintln(out(cmd), s.EndingMessage)
		fmt.Fprintln(out(cmd))
	}
	return previewSummary(cmd, answers)
}

func previewSummary(cmd *cobra.Command, answers []quiz.Answer) error {
	score := quiz.NewScore(answers)
	fmt.Fprintf(out(cmd), "── Summary: %d/%d good (%s) ──\n", score.Good, score.Total, score.Grade())
	return nil
}
