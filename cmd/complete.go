package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/cbsetutor/internal/badges"
	"github.com/abhisek/cbsetutor/internal/llm"
	"github.com/abhisek/cbsetutor/internal/progression"
	"github.com/abhisek/cbsetutor/internal/results"
	"github.com/abhisek/cbsetutor/internal/store"
	"github.com/abhisek/cbsetutor/internal/tutor"
)

var completeCmd = &cobra.Command{
	Use:   "complete <answers.json>",
	Short: "Grade a learner's submission and update their progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		sub, err := results.DecodeSubmission(data)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if u, _ := cmd.Flags().GetString("user"); u != "" {
			sub.UserID = u
		}
		if s, _ := cmd.Flags().GetString("subject"); s != "" {
			sub.SubjectID = s
		}
		if sub.UserID == "" || sub.SubjectID == "" {
			return fmt.Errorf("--user and --subject are required unless set in %s", args[0])
		}

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

		report, err := svc.CompleteAssessment(ctx, sub)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		fmt.Fprint(cmd.OutOrStdout(), renderReport(report))
		return nil
	},
}

func init() {
	completeCmd.Flags().StringP("user", "u", "", "Learner ID")
	completeCmd.Flags().StringP("subject", "s", "", "Subject ID of the question set")
	completeCmd.Flags().Bool("remediate", false, "Ask the AI tutor for notes on critical gaps")
	completeCmd.Flags().Bool("json", false, "Print the report as JSON")
}

// newResultsService wires the completion workflow from flags and environment.
func newResultsService(cmd *cobra.Command, st *store.Store) (*results.Service, func(), error) {
	progCfg, err := progression.ConfigFromEnv()
	if err != nil {
		return nil, nil, err
	}
	locker, closeLocker, err := newLocker(cmd)
	if err != nil {
		return nil, nil, err
	}

	events := st.EventRepo()
	evaluator := badges.NewEvaluator()
	deps := results.Deps{
		Questions: st.QuestionRepo(),
		Outcomes:  st.OutcomeRepo(),
		Counters:  st.CounterRepo(),
		Events:    events,
		Locker:    locker,
		Updater:   progression.NewUpdater(progCfg, evaluator),
		Evaluator: evaluator,
		Awards:    badges.NewService(events),
	}

	if remediate, _ := cmd.Flags().GetBool("remediate"); remediate {
		provider, err := llm.NewProviderFromEnv(cmd.Context(), events)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Remediation notes will be unavailable.")
		} else {
			deps.Tutor = tutor.NewService(provider, tutor.DefaultConfig())
		}
	}

	return results.NewService(deps, results.DefaultConfig()), closeLocker, nil
}
