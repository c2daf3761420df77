package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/studyplan"
	"github.com/abhisek/examprep/internal/ui/report"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sittings",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		withPlan, _ := cmd.Flags().GetBool("plan")
		asJSON, _ := cmd.Flags().GetBool("json")
		if limit < 0 {
			return fmt.Errorf("--limit must not be negative")
		}

		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		book, err := openBook(ctx, st, cfg)
		if err != nil {
			return err
		}
		results := book.Results()
		if limit > 0 && limit < len(results) {
			results = results[:limit]
		}

		var plan *studyplan.Plan
		if withPlan && len(results) > 0 {
			plan = studyplan.Build(results[0], studyplan.Options{})
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Results any             `json:"results"`
				Plan    *studyplan.Plan `json:"plan,omitempty"`
			}{Results: results, Plan: plan})
		}

		if len(results) == 0 {
			fmt.Fprintln(out, "No sittings yet. Run `examprep play` to sit a mock exam.")
			return nil
		}
		fmt.Fprintln(out, report.HistoryTable(results).String())
		if withPlan {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Study plan from the sitting of %s\n\n", results[0].FinishedAt.Local().Format(report.DateFormat))
			fmt.Fprint(out, report.Plan(plan))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 0, "Show at most this many sittings (0 = all stored)")
	historyCmd.Flags().Bool("plan", false, "Add a study plan built from the most recent sitting")
	historyCmd.Flags().Bool("json", false, "Print JSON instead of a table")
}
