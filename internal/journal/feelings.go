package journal

import "strings"

// FeelingOption is a feeling the child can pick for an entry.
type FeelingOption struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

var commonFeelings = []FeelingOption{
	{"happy", "😊"},
	{"sad", "😢"},
	{"angry", "😠"},
	{"excited", "🤩"},
	{"worried", "😟"},
	{"calm", "😌"},
	{"proud", "😎"},
	{"scared", "😨"},
	{"confused", "😕"},
	{"grateful", "🙏"},
	{"lonely", "😔"},
	{"loved", "🥰"},
	{"frustrated", "😤"},
	{"peaceful", "☺️"},
	{"silly", "😜"},
	{"tired", "😴"},
}

// CommonFeelings returns the feeling picker options in display order.
func CommonFeelings() []FeelingOption {
	out := make([]FeelingOption, len(commonFeelings))
	copy(out, commonFeelings)
	return out
}

// EmojiFor returns the emoji for a feeling name, or a smile when unknown.
func EmojiFor(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, f := range commonFeelings {
		if f.Name == n {
			return f.Emoji
		}
	}
	return "😊"
}
