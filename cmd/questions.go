package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/cbsetutor/internal/results"
	"github.com/abhisek/cbsetutor/internal/store"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Manage subject question sets",
}

var questionsImportCmd = &cobra.Command{
	Use:   "import <subject> <file.json>",
	Short: "Replace a subject's question set from a JSON file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, path := args[0], args[1]

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		qs, err := results.DecodeQuestionSet(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		records := make([]store.QuestionRecord, len(qs))
		for i, q := range qs {
			records[i] = store.QuestionRecord{ID: q.ID, ConceptTag: q.ConceptTag, CorrectOptionIndex: q.CorrectOptionIndex}
		}
		if err := s.QuestionRepo().SaveQuestionSet(cmd.Context(), subject, records); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions into %s.\n", len(records), subject)
		return nil
	},
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subjects with a question set",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.QuestionRepo()
		subjects, err := repo.ListSubjects(ctx)
		if err != nil {
			return err
		}
		if len(subjects) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No question sets imported.")
			return nil
		}
		for _, subject := range subjects {
			qs, err := repo.ReadQuestionSet(ctx, subject)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %3d questions\n", subject, len(qs))
		}
		return nil
	},
}

func init() {
	questionsCmd.AddCommand(questionsImportCmd)
	questionsCmd.AddCommand(questionsListCmd)
}
