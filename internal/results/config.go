package results

const (
	DefaultXPPerCorrect     = 10
	DefaultMaxWriteAttempts = 3
	DefaultRecentAttempts   = 5
)

// Config holds the tunables of the completion workflow.
type Config struct {
	// XPPerCorrect is the base XP awarded per correct answer.
	XPPerCorrect int

	// MaxWriteAttempts bounds the read-apply-write cycles tried when the
	// counters row changes underneath us.
	MaxWriteAttempts int

	// RecentAttempts is how many graded attempts Progress returns.
	RecentAttempts int
}

// DefaultConfig returns the product defaults.
func DefaultConfig() Config {
	return Config{
		XPPerCorrect:     DefaultXPPerCorrect,
		MaxWriteAttempts: DefaultMaxWriteAttempts,
		RecentAttempts:   DefaultRecentAttempts,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.XPPerCorrect < 0 {
		c.XPPerCorrect = d.XPPerCorrect
	}
	if c.MaxWriteAttempts < 1 {
		c.MaxWriteAttempts = d.MaxWriteAttempts
	}
	if c.RecentAttempts < 1 {
		c.RecentAttempts = d.RecentAttempts
	}
	return c
}
