package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRankCommand(st *state) *cobra.Command {
	var solution string
	var top int

	cmd := &cobra.Command{
		Use:   "rank --solution FILE SUBMISSION...",
		Short: "Score many submissions and print a leaderboard",
		Long: `Score every submission CSV against one solution concurrently and print
the leaderboard ordered by score. Files with identical content are scored
once. Submissions that fail are listed with a participant-safe message.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if top < 0 {
				return fmt.Errorf("--top must not be negative, got %d", top)
			}
			report, err := st.service().RankFiles(cmd.Context(), solution, args)
			if err != nil {
				return err
			}
			if top > 0 && top < len(report.Entries) {
				report.Entries = report.Entries[:top]
			}
			return renderReport(cmd.OutOrStdout(), st.cfg.Output, report)
		},
	}

	cmd.Flags().StringVar(&solution, "solution", "", "Solution CSV with binary labels")
	cmd.Flags().IntVar(&top, "top", 0, "Show only the first N leaderboard rows (0 = all)")
	cmd.Flags().Int("worker-count", 0, "Number of scoring workers (default: CPU count)")
	cmd.Flags().Int("queue-size", 0, "Job queue capacity")
	cmd.Flags().Int("dedupe-size", 0, "Number of remembered submission digests")
	_ = cmd.MarkFlagRequired("solution")

	return cmd
}
