package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/cbsetutor/internal/locks"
	"github.com/abhisek/cbsetutor/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "cbsetutor",
	Short: "Assessment grading and progression for CBSE learners",
	Long: `cbsetutor grades CBSE subject assessments, tracks XP, levels, streaks and
badges per learner, and can ask an AI tutor for remediation notes on weak concepts.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CBSETUTOR_DB env var)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for cross-process locking (overrides CBSETUTOR_REDIS_ADDR)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CBSETUTOR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// newLocker returns a Redis-backed locker when an address is configured,
// otherwise an in-process one. The returned close func releases the client.
func newLocker(cmd *cobra.Command) (locks.Locker, func(), error) {
	addr, _ := cmd.Flags().GetString("redis")
	if addr == "" {
		addr = os.Getenv("CBSETUTOR_REDIS_ADDR")
	}
	if addr == "" {
		return locks.NewLocal(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(cmd.Context()).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	slog.Debug("using redis locker", "addr", addr)
	return locks.NewRedis(client, locks.DefaultTTL), func() { client.Close() }, nil
}
