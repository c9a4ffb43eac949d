package tutor

// Config holds tutor generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// MaxNotes caps how many critical gaps get a note per attempt.
	MaxNotes int

	// Concurrency bounds in-flight note requests.
	Concurrency int

	ChatMaxTokens   int
	ChatTemperature float64
}

// DefaultConfig returns sensible defaults for remediation and chat.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       512,
		Temperature:     0.5,
		MaxNotes:        5,
		Concurrency:     3,
		ChatMaxTokens:   400,
		ChatTemperature: 0.7,
	}
}
