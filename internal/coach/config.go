package coach

import "time"

// StarterCount is how many conversation starters are requested per quiz.
const StarterCount = 3

// Config holds generation settings for the coach.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds one Starters call; zero means no extra deadline.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
	}
}
