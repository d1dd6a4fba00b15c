package cli

import (
	"github.com/spf13/cobra"
)

func newScoreCommand(st *state) *cobra.Command {
	var solution, submission string

	cmd := &cobra.Command{
		Use:   "score --solution FILE --submission FILE",
		Short: "Score one submission against a solution",
		Long: `Score one submission CSV against a solution CSV.

Exit codes: 0 on success, 2 when the submission is at fault (the message is
safe to share with the participant), 1 on internal errors.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			res, err := st.service().ScoreFiles(ctx, solution, submission)
			if err != nil {
				return st.scoringFailure(ctx, err)
			}
			return renderScore(cmd.OutOrStdout(), st.cfg.Output, res)
		},
	}

	cmd.Flags().StringVar(&solution, "solution", "", "Solution CSV with binary labels")
	cmd.Flags().StringVar(&submission, "submission", "", "Submission CSV with scores")
	_ = cmd.MarkFlagRequired("solution")
	_ = cmd.MarkFlagRequired("submission")

	return cmd
}
