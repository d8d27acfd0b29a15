package achievement

func count(src Source) Rule { return Rule{Kind: KindCount, Source: src} }

func quizzesAtLeast(pct float64, capped bool) Rule {
	kind := KindCount
	if capped {
		kind = KindCappedCount
	}
	return Rule{Kind: kind, Source: SourceQuizzes, MinScore: pct}
}

func feelings(keywords ...string) Rule {
	return Rule{Kind: KindFeelingCount, Keywords: keywords}
}

var streak = Rule{Kind: KindStreak}

var definitions = []Definition{
	// Stories
	{"first_story", "First Story", "Read your first story", "book.fill", CategoryStories, 1, count(SourceStories)},
	{"bookworm", "Bookworm", "Read 5 stories", "books.vertical.fill", CategoryStories, 5, count(SourceStories)},
	{"story_explorer", "Story Explorer", "Read 10 stories", "map.fill", CategoryStories, 10, count(SourceStories)},
	{"story_master", "Story Master", "Read 25 stories", "crown.fill", CategoryStories, 25, count(SourceStories)},
	{"favorite_fan", "Favorite Fan", "Favorite 3 stories", "heart.fill", CategoryStories, 3, count(SourceFavorites)},
	{"super_fan", "Super Fan", "Favorite 10 stories", "heart.circle.fill", CategoryStories, 10, count(SourceFavorites)},

	// Quizzes
	{"first_quiz", "First Quiz", "Complete your first quiz", "checkmark.circle.fill", CategoryQuizzes, 1, count(SourceQuizzes)},
	{"quiz_rookie", "Quiz Rookie", "Complete 5 quizzes", "graduationcap.fill", CategoryQuizzes, 5, count(SourceQuizzes)},
	{"quiz_pro", "Quiz Pro", "Complete 10 quizzes", "star.fill", CategoryQuizzes, 10, count(SourceQuizzes)},
	{"quiz_master", "Quiz Master", "Complete 25 quizzes", "trophy.fill", CategoryQuizzes, 25, count(SourceQuizzes)},
	{"perfect_score", "Perfect Score", "Get 100% on a quiz", "checkmark.seal.fill", CategoryQuizzes, 1, quizzesAtLeast(100, false)},
	{"high_achiever", "High Achiever", "Get 80% or higher on 5 quizzes", "chart.line.uptrend.xyaxis", CategoryQuizzes, 5, quizzesAtLeast(80, true)},

	// Streaks
	{"getting_started", "Getting Started", "Maintain a 3-day streak", "flame.fill", CategoryStreaks, 3, streak},
	{"week_warrior", "Week Warrior", "Maintain a 7-day streak", "calendar", CategoryStreaks, 7, streak},
	{"two_week_champion", "Two Week Champion", "Maintain a 14-day streak", "calendar.badge.clock", CategoryStreaks, 14, streak},
	{"month_of_growth", "Month of Growth", "Maintain a 30-day streak", "calendar.badge.exclamationmark", CategoryStreaks, 30, streak},

	// Feelings
	{"brave_heart", "Brave Heart", "Complete 3 stories about fear or being scared", "shield.fill", CategoryFeelings, 3, feelings("scared", "fear")},
	{"calm_mind", "Calm Mind", "Complete 3 stories about anger or frustration", "leaf.fill", CategoryFeelings, 3, feelings("angry", "frustrated")},
	{"social_star", "Social Star", "Complete 3 stories about loneliness or friendship", "person.2.fill", CategoryFeelings, 3, feelings("lonely", "hurt")},
	{"worry_warrior", "Worry Warrior", "Complete 3 stories about anxiety or worry", "brain.head.profile", CategoryFeelings, 3, feelings("anxious", "worried", "nervous")},

	// Milestones
	{"emotional_explorer", "Emotional Explorer", "Explore stories with 5 different feelings", "map.circle.fill", CategoryMilestones, 5, Rule{Kind: KindDistinctFeelings}},
	{"feeling_expert", "Feeling Expert", "Explore stories with 10 different feelings", "brain", CategoryMilestones, 10, Rule{Kind: KindDistinctFeelings}},
	{"all_rounder", "All-Rounder", "Complete at least 1 story and 1 quiz", "star.circle.fill", CategoryMilestones, 1, Rule{Kind: KindComposite, Condition: ConditionStoryAndQuiz}},
	{"rising_star", "Rising Star", "Maintain 50% or higher overall quiz average", "star.fill", CategoryMilestones, 1, Rule{Kind: KindComposite, Condition: ConditionAverageAtLeast, Threshold: 50}},
	{"consistent_learner", "Consistent Learner", "Get 60% or higher on 10 quizzes", "chart.bar.fill", CategoryMilestones, 10, quizzesAtLeast(60, true)},
}

// Catalog returns the static achievement definitions in display order.
func Catalog() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup finds a definition by id.
func Lookup(id string) (Definition, bool) {
	for _, d := range definitions {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}
