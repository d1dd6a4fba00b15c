package scoring

import (
	"fmt"
	"strings"

	"github.com/okian/aucscore/internal/domain/auc"
	"github.com/okian/aucscore/internal/domain/table"
)

// Result contains the computed score for a submission.
type Result struct {
	SubmissionID string
	Score        float64
	// Scored lists the label columns with at least one positive case.
	Scored []string
	// Skipped lists the label columns left out because they have none.
	Skipped []string
}

// Score returns the macro-averaged ROC AUC of submission against solution,
// ignoring label columns without a positive case.
//
// The row identifier column is excluded from both tables. The input frames
// are not modified.
func Score(solution, submission *table.Frame, rowIDColumn string) (float64, error) {
	res, err := Evaluate(solution, submission, rowIDColumn)
	if err != nil {
		return 0, err
	}
	return res.Score, nil
}

// Evaluate is Score with the column selection reported alongside the score.
func Evaluate(solution, submission *table.Frame, rowIDColumn string) (Result, error) {
	return evaluate(solution, submission, rowIDColumn, auc.Macro)
}

func evaluate(solution, submission *table.Frame, rowIDColumn string, avg auc.Average) (Result, error) {
	if solution == nil || submission == nil {
		return Result{}, internalError("input", ErrMissingInput)
	}

	sol, err := solution.Without(rowIDColumn)
	if err != nil {
		return Result{}, internalError("drop solution row id", err)
	}
	sub, err := submission.Without(rowIDColumn)
	if err != nil {
		return Result{}, internalError("drop submission row id", err)
	}

	if bad := sub.NonNumeric(); len(bad) > 0 {
		return Result{}, participantError(fmt.Errorf("%w: %s", ErrInvalidDataTypes, formatFields(bad)))
	}

	scored, skipped, err := scoredColumns(sol)
	if err != nil {
		return Result{}, internalError("sum solution labels", err)
	}
	if len(scored) == 0 {
		return Result{}, internalError("select scored columns", ErrNoPositiveLabels)
	}

	truthFrame, err := sol.Select(scored...)
	if err != nil {
		return Result{}, internalError("select solution columns", err)
	}
	truth, err := truthFrame.Matrix(scored...)
	if err != nil {
		return Result{}, internalError("read solution columns", err)
	}
	scores, err := sub.Matrix(scored...)
	if err != nil {
		return Result{}, internalError("read submission columns", err)
	}

	score, err := safeCall(func() (float64, error) {
		return auc.Score(truth, scores, avg)
	}, truthFrame.AllNumeric(), truthFrame.HasBools())
	if err != nil {
		return Result{}, err
	}

	return Result{Score: score, Scored: scored, Skipped: skipped}, nil
}

// scoredColumns splits the label columns into those with a positive sum and
// those without.
func scoredColumns(sol *table.Frame) (scored, skipped []string, err error) {
	for _, name := range sol.Names() {
		sum, err := sol.Sum(name)
		if err != nil {
			return nil, nil, err
		}
		if sum > 0 {
			scored = append(scored, name)
		} else {
			skipped = append(skipped, name)
		}
	}
	return scored, skipped, nil
}

// formatFields renders offending columns as a mapping, e.g. {a: object}.
func formatFields(fields []table.Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Name + ": " + f.Kind.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
