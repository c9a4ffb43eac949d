package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cbsetutor/internal/progression"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show a learner's XP, streak, subjects and badges",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc, closeDeps, err := newResultsService(cmd, st)
		if err != nil {
			return err
		}
		defer closeDeps()

		view, err := svc.Progress(cmd.Context(), user)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), view)
		}
		cfg, err := progression.ConfigFromEnv()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderProgress(view, cfg.LevelXPStep))
		return nil
	},
}

func init() {
	progressCmd.Flags().StringP("user", "u", "", "Learner ID (required)")
	progressCmd.Flags().Bool("json", false, "Print the progress view as JSON")
	_ = progressCmd.MarkFlagRequired("user")
}
