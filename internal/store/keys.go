package store

// Global keys.
const (
	KeySelectedAge     = "selectedAge"
	KeySelectedChildID = "selectedChildId"
	KeyChildren        = "children"
	KeyQuizSessions    = "quizSessions"
	KeyFormatVersion   = "formatVersion"
)

// Per-child key prefixes. The child id is appended directly.
const (
	PrefixCompletedStories = "completedStories_"
	PrefixFavoriteStories  = "favoriteStories_"
	PrefixAchievements     = "achievements_"
	PrefixStreak           = "streak_"
	PrefixJournal          = "journalEntries_"
)

func CompletedStoriesKey(childID string) string { return PrefixCompletedStories + childID }
func FavoriteStoriesKey(childID string) string  { return PrefixFavoriteStories + childID }
func AchievementsKey(childID string) string     { return PrefixAchievements + childID }
func StreakKey(childID string) string           { return PrefixStreak + childID }
func JournalKey(childID string) string          { return PrefixJournal + childID }

// ChildKeys returns every per-child key owned by childID.
func ChildKeys(childID string) []string {
	return []string{
		CompletedStoriesKey(childID),
		FavoriteStoriesKey(childID),
		AchievementsKey(childID),
		StreakKey(childID),
		JournalKey(childID),
	}
}
