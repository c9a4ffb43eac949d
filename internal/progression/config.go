package progression

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// DefaultLevelXPStep is the XP needed per level.
	DefaultLevelXPStep = 100

	// DefaultPerfectBonusXP is added to the base XP of a perfect score.
	DefaultPerfectBonusXP = 50
)

// Config holds the tunable progression constants.
type Config struct {
	LevelXPStep    int
	PerfectBonusXP int

	// Location defines calendar-day boundaries for streaks.
	Location *time.Location
}

// DefaultConfig returns the product defaults with UTC day boundaries.
func DefaultConfig() Config {
	return Config{
		LevelXPStep:    DefaultLevelXPStep,
		PerfectBonusXP: DefaultPerfectBonusXP,
		Location:       time.UTC,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("CBSETUTOR_LEVEL_XP_STEP"); v != "" {
		step, err := strconv.Atoi(v)
		if err != nil || step <= 0 {
			return cfg, fmt.Errorf("CBSETUTOR_LEVEL_XP_STEP must be a positive integer, got %q", v)
		}
		cfg.LevelXPStep = step
	}

	if tz := os.Getenv("CBSETUTOR_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return cfg, fmt.Errorf("load timezone %q: %w", tz, err)
		}
		cfg.Location = loc
	}

	return cfg, nil
}

func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}
