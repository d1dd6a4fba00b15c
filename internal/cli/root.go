// Package cli provides the aucscore command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	service "github.com/okian/aucscore/internal/app"
	"github.com/okian/aucscore/internal/config"
	"github.com/okian/aucscore/internal/domain/scoring"
	"github.com/okian/aucscore/pkg/logger"
	"github.com/okian/aucscore/pkg/metrics"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// state is shared by the root command and its subcommands.
type state struct {
	cfgFile string
	cfg     *config.Config
	log     logger.Logger
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&state{})
}

func newRootCmd(st *state) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aucscore",
		Short: "Score multi-label submissions with column-filtered macro ROC AUC",
		Long: `aucscore scores submission tables against a solution table.

The metric is the macro-averaged ROC AUC over the label columns that have at
least one positive case. Columns without positives are left out.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			return st.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&st.cfgFile, "config", "", "YAML config file (default: $AUCSCORE_CONFIG)")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("log-format", "", "Log format (text|json)")
	flags.String("metrics-file", "", "Write Prometheus metrics to this textfile after the run")
	flags.String("row-id-column", "", "Identifier column excluded from scoring")
	flags.String("average", "", "AUC averaging mode (macro|weighted|micro)")
	flags.StringP("output", "o", "", "Output format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{config.OutputText, config.OutputJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newScoreCommand(st))
	rootCmd.AddCommand(newRankCommand(st))
	rootCmd.AddCommand(newGenerateCommand(st))
	rootCmd.AddCommand(NewVersionCommand(Version))

	return rootCmd
}

// setup loads configuration and initializes logging for a command run.
func (st *state) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context(), st.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	st.cfg = cfg
	st.log = logger.Get().Named("cli")
	return nil
}

// service builds the application service from the loaded configuration.
func (st *state) service(extra ...service.Option) *service.Service {
	opts := []service.Option{
		service.WithLogger(logger.Get().Named("service")),
		service.WithRowIDColumn(st.cfg.RowIDColumn),
		service.WithAverage(st.cfg.AverageMode()),
		service.WithWorkerCount(st.cfg.WorkerCount),
		service.WithQueueSize(st.cfg.QueueSize),
		service.WithDedupeSize(st.cfg.DedupeSize),
	}
	return service.New(append(opts, extra...)...)
}

// scoringFailure converts a scoring error into an exit error. Participant
// errors keep their message; internal details are logged and redacted.
func (st *state) scoringFailure(ctx context.Context, err error) error {
	if scoring.IsParticipantVisible(err) {
		return &ExitError{Code: ExitParticipant, Err: fmt.Errorf("%s", scoring.PublicMessage(err))}
	}
	if st.log != nil {
		st.log.Error(ctx, "scoring failed", logger.Error(err))
	}
	return &ExitError{Code: ExitInternal, Err: fmt.Errorf("%s", scoring.PublicMessage(err))}
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	st := &state{}
	rootCmd := newRootCmd(st)

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)

	if st.cfg != nil && st.cfg.MetricsFile != "" {
		if merr := metrics.WriteTextfile(st.cfg.MetricsFile); merr != nil && err == nil {
			err = merr
		}
	}

	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return exitCode(err)
}
