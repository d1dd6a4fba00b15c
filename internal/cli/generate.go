package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/aucscore/internal/synth"
)

func newGenerateCommand(st *state) *cobra.Command {
	var dir string
	opts := synth.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "generate --out DIR",
		Short: "Write a synthetic solution and submission pair",
		Long: `Write solution.csv and submission.csv into DIR. The data depends only on
the flags, so the same seed always yields the same files. Empty classes are
label columns without positives, which the scorer leaves out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.RowIDColumn = st.cfg.RowIDColumn
			sol, sub, err := st.service().Generate(cmd.Context(), opts, dir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "solution:   %s\nsubmission: %s\n", sol, sub)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "out", "", "Output directory")
	cmd.Flags().IntVar(&opts.Rows, "rows", opts.Rows, "Number of rows")
	cmd.Flags().IntVar(&opts.Classes, "classes", opts.Classes, "Number of label columns")
	cmd.Flags().IntVar(&opts.EmptyClasses, "empty-classes", opts.EmptyClasses, "Label columns without positives")
	cmd.Flags().Float64Var(&opts.PositiveRate, "positive-rate", opts.PositiveRate, "Share of positive labels")
	cmd.Flags().Float64Var(&opts.Noise, "noise", opts.Noise, "Standard deviation of score noise")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "Random seed")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
