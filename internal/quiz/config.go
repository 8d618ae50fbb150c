package quiz

// Config controls the generation side of the Service.
type Config struct {
	// MaxTokens is the token budget for one backend response. Sized for
	// the largest permitted batch (20 items).
	MaxTokens int

	// Temperature controls backend output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}
