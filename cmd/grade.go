package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/cbsetutor/internal/assessment"
	"github.com/abhisek/cbsetutor/internal/results"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <file.json>",
	Short: "Grade questions and answers from a file without saving anything",
	Long: `Grade a self-contained document of the form
{"questions": [...], "answers": [...]} and print the result.
Nothing is read from or written to the database.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		req, err := results.DecodeGradeRequest(data)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		result := assessment.Grade(req.Questions, assessment.AnswersByQuestion(req.Answers))

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), result)
		}
		fmt.Fprint(cmd.OutOrStdout(), renderResult(result))
		return nil
	},
}

func init() {
	gradeCmd.Flags().Bool("json", false, "Print the grading result as JSON")
}
