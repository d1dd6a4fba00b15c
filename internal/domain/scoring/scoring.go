// Package scoring computes the competition metric: macro-averaged ROC AUC
// over the label columns that have at least one positive case.
//
// Failures are returned as *Error values tagged with a Kind. Participant
// errors carry a message that is safe to show to the submitter; internal
// errors are redacted by PublicMessage.
package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/aucscore/internal/domain/auc"
	"github.com/okian/aucscore/internal/domain/table"
	"github.com/okian/aucscore/pkg/logger"
	"github.com/okian/aucscore/pkg/metrics"
)

// Default scoring configuration constants.
const (
	DefaultRowIDColumn = "row_id"
)

// Option applies a configuration option to the MacroAUCScorer.
type Option func(*MacroAUCScorer)

// WithRowIDColumn sets the identifier column excluded from scoring.
func WithRowIDColumn(name string) Option {
	return func(s *MacroAUCScorer) {
		if name != "" {
			s.rowIDColumn = name
		}
	}
}

// WithAverage sets how per-column AUC values are combined.
func WithAverage(avg auc.Average) Option {
	return func(s *MacroAUCScorer) {
		if avg != "" {
			s.average = avg
		}
	}
}

// WithLogger sets the logger used to report scoring outcomes.
func WithLogger(l logger.Logger) Option {
	return func(s *MacroAUCScorer) {
		if l != nil {
			s.logger = l
		}
	}
}

// Input is one scoring request.
type Input struct {
	SubmissionID string
	Solution     *table.Frame
	Submission   *table.Frame
}

// Scorer computes a score from an input.
type Scorer interface {
	// Score computes a score. ctx is checked before any work starts.
	Score(ctx context.Context, in Input) (Result, error)
}

// MacroAUCScorer implements Scorer with the column-filtered AUC metric.
type MacroAUCScorer struct {
	rowIDColumn string
	average     auc.Average
	logger      logger.Logger
}

// NewMacroAUCScorer creates a scorer with configuration options.
func NewMacroAUCScorer(opts ...Option) *MacroAUCScorer {
	s := &MacroAUCScorer{
		rowIDColumn: DefaultRowIDColumn,
		average:     auc.Macro,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RowIDColumn returns the identifier column this scorer drops.
func (s *MacroAUCScorer) RowIDColumn() string { return s.rowIDColumn }

// Score computes the score for the given input.
func (s *MacroAUCScorer) Score(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{SubmissionID: in.SubmissionID}, internalError("score", fmt.Errorf("context cancelled: %w", err))
	}

	start := time.Now()
	res, err := evaluate(in.Solution, in.Submission, s.rowIDColumn, s.average)
	metrics.RecordScoringLatency(float64(time.Since(start).Microseconds()) / 1000)
	res.SubmissionID = in.SubmissionID

	if err != nil {
		kind := KindOf(err)
		if kind == KindParticipant {
			metrics.RecordScoring(metrics.OutcomeParticipantError)
		} else {
			metrics.RecordScoring(metrics.OutcomeInternalError)
		}
		if s.logger != nil {
			s.logger.Warn(ctx, "scoring failed",
				logger.String("submission", in.SubmissionID),
				logger.String("kind", kind.String()),
				logger.Error(err),
			)
		}
		return res, err
	}

	metrics.RecordScoring(metrics.OutcomeSuccess)
	metrics.RecordColumns(len(res.Scored), len(res.Skipped))
	if s.logger != nil {
		s.logger.Debug(ctx, "submission scored",
			logger.String("submission", in.SubmissionID),
			logger.Float64("score", res.Score),
			logger.Int("scored_columns", len(res.Scored)),
			logger.Strings("skipped_columns", res.Skipped),
		)
	}
	return res, nil
}
