package quiz

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/bigfeelings/bigfeelings/internal/catalog"
)

// Builder accumulates answers for a quiz in progress. Stories are presented
// in the order given; each story accepts one answer.
type Builder struct {
	session  Session
	stories  []catalog.Story
	answered map[string]bool
}

// NewBuilder starts a session over stories for band, owned by childID.
func NewBuilder(band catalog.AgeBand, stories []catalog.Story, childID string, now time.Time) *Builder {
	return &Builder{
		session: Session{
			ID:        uuid.NewString(),
			AgeRange:  band,
			StartDate: now,
			ChildID:   childID,
		},
		stories:  stories,
		answered: make(map[string]bool, len(stories)),
	}
}

// Stories returns the stories in presentation order.
func (b *Builder) Stories() []catalog.Story { return b.stories }

// Next returns the first story without an answer.
func (b *Builder) Next() (catalog.Story, bool) {
	for _, s := range b.stories {
		if !b.answered[s.ID] {
			return s, true
		}
	}
	return catalog.Story{}, false
}

// Progress reports answered and total story counts.
func (b *Builder) Progress() (answered, total int) {
	return len(b.session.Answers), len(b.stories)
}

// Done reports whether every story has an answer.
func (b *Builder) Done() bool {
	_, more := b.Next()
	return !more
}

// Answer records choiceID for story. It returns false, recording nothing,
// when the story was already answered or has no such choice.
func (b *Builder) Answer(story catalog.Story, choiceID catalog.ChoiceID, now time.Time) (catalog.Choice, bool) {
	if b.answered[story.ID] {
		return catalog.Choice{}, false
	}
	choice, ok := story.Choice(choiceID)
	if !ok {
		return catalog.Choice{}, false
	}
	b.answered[story.ID] = true
	b.session.Answers = append(b.session.Answers, Answer{
		StoryID:            story.ID,
		StoryTitle:         story.Title,
		Feeling:            story.Feeling,
		SelectedChoiceID:   choice.ID,
		SelectedChoiceType: choice.Type,
		Timestamp:          now,
	})
	return choice, true
}

// Finish stamps the end time and returns the completed session.
func (b *Builder) Finish(now time.Time) Session {
	end := now
	b.session.EndDate = &end
	return b.Snapshot()
}

// Snapshot returns a copy of the session so far.
func (b *Builder) Snapshot() Session {
	s := b.session
	s.Answers = append([]Answer(nil), b.session.Answers...)
	return s
}

// ShuffleChoices returns the choices in random order so the good answer is
// not always in the same slot. A nil r uses the global source.
func ShuffleChoices(choices []catalog.Choice, r *rand.Rand) []catalog.Choice {
	out := append([]catalog.Choice(nil), choices...)
	shuffle := rand.Shuffle
	if r != nil {
		shuffle = r.Shuffle
	}
	shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
