package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/cbsetutor/internal/llm"
	"github.com/abhisek/cbsetutor/internal/store"
	"github.com/abhisek/cbsetutor/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged AI tutor requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit}
		if purpose != "" {
			opts.Limit = 0
		}
		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query llm events: %w", err)
		}
		events = filterPurpose(events, purpose, limit)

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No LLM requests logged."))
			return nil
		}

		t := newTable("ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
		for _, e := range events {
			ok := "yes"
			if !e.Success {
				ok = "no"
			}
			t.Row(strconv.Itoa(e.ID), e.Timestamp.Local().Format(timeLayout), e.Purpose,
				truncate(e.Model, 28), strconv.Itoa(e.InputTokens), strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10), ok)
		}
		fmt.Fprintln(out, t)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid event id %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get llm event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("llm event %d not found", id)
		}

		out := cmd.OutOrStdout()
		fields := [][2]string{
			{"Time", e.Timestamp.Local().Format(timeLayout)},
			{"Provider", e.Provider},
			{"Model", e.Model},
			{"Purpose", e.Purpose},
			{"Tokens", fmt.Sprintf("%d in, %d out", e.InputTokens, e.OutputTokens)},
			{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
			{"Success", strconv.FormatBool(e.Success)},
		}
		if e.ErrorMessage != "" {
			fields = append(fields, [2]string{"Error", e.ErrorMessage})
		}
		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("LLM event %d", e.ID)))
		for _, f := range fields {
			fmt.Fprintf(out, "%s %s\n", theme.Hint.Render(fmt.Sprintf("%-9s", f[0])), f[1])
		}
		for _, part := range [][2]string{{"Request", e.RequestBody}, {"Response", e.ResponseBody}} {
			body := part[1]
			if body == "" {
				body = theme.Hint.Render("(not captured)")
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, theme.Heading.Render(part[0]))
			fmt.Fprintln(out, body)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		usage, err := s.EventRepo().LLMUsage(cmd.Context())
		if err != nil {
			return fmt.Errorf("query llm usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(usage) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No LLM usage recorded."))
			return nil
		}
		byPurpose, byModel := splitUsage(usage)

		var calls, in, outTok int
		pt := newTable("Purpose", "Calls", "Input", "Output", "Avg ms")
		for _, u := range byPurpose {
			pt.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
				strconv.Itoa(u.OutputTokens), strconv.FormatInt(u.AvgLatencyMs, 10))
			calls += u.Calls
			in += u.InputTokens
			outTok += u.OutputTokens
		}
		pt.Row("total", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(outTok), "")

		var cost float64
		var unpriced []string
		mt := newTable("Model", "Calls", "Input", "Output", "Cost (USD)")
		for _, u := range byModel {
			price := "?"
			if c, ok := llm.EstimateCost(u.Model, u.InputTokens, u.OutputTokens); ok {
				cost += c
				price = formatCost(c)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			mt.Row(truncate(u.Model, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
				strconv.Itoa(u.OutputTokens), price)
		}
		totalLabel := "total"
		if len(unpriced) > 0 {
			totalLabel = "total (partial)"
		}
		mt.Row(totalLabel, "", "", "", formatCost(cost))

		fmt.Fprintln(out, theme.Heading.Render("Usage by purpose"))
		fmt.Fprintln(out, pt)
		fmt.Fprintln(out, theme.Heading.Render("Estimated cost by model"))
		fmt.Fprintln(out, mt)
		if len(unpriced) > 0 {
			fmt.Fprintln(out, theme.Hint.Render("No pricing for: "+strings.Join(unpriced, ", ")))
		}
		return nil
	},
}

const timeLayout = "2006-01-02 15:04:05"

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...)
}

// filterPurpose keeps up to limit events of one purpose. An empty purpose
// keeps everything.
func filterPurpose(events []store.LLMRequestEventRecord, purpose string, limit int) []store.LLMRequestEventRecord {
	if purpose == "" {
		return events
	}
	var out []store.LLMRequestEventRecord
	for _, e := range events {
		if e.Purpose != purpose {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// splitUsage folds purpose/model rows into per-purpose and per-model totals,
// keeping first-seen order. Averages are weighted by call count.
func splitUsage(rows []store.LLMUsageRecord) (byPurpose, byModel []store.LLMUsageRecord) {
	fold := func(out []store.LLMUsageRecord, idx map[string]int, key string, r store.LLMUsageRecord) []store.LLMUsageRecord {
		i, ok := idx[key]
		if !ok {
			idx[key] = len(out)
			return append(out, r)
		}
		agg := &out[i]
		latency := agg.AvgLatencyMs*int64(agg.Calls) + r.AvgLatencyMs*int64(r.Calls)
		agg.Calls += r.Calls
		agg.InputTokens += r.InputTokens
		agg.OutputTokens += r.OutputTokens
		agg.AvgLatencyMs = latency / int64(agg.Calls)
		return out
	}

	purposes, models := map[string]int{}, map[string]int{}
	for _, r := range rows {
		p, m := r, r
		p.Model = ""
		m.Purpose = ""
		byPurpose = fold(byPurpose, purposes, r.Purpose, p)
		byModel = fold(byModel, models, r.Model, m)
	}
	return byPurpose, byModel
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. remediation, chat)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
