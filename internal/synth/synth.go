// Package synth generates solution and submission tables for trying the
// scorer without competition data.
package synth

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/aucscore/internal/domain/table"
)

// Default generator settings.
const (
	DefaultRows         = 1000
	DefaultClasses      = 8
	DefaultPositiveRate = 0.1
	DefaultNoise        = 0.2
	DefaultRowIDColumn  = "row_id"
)

// rowNamespace scopes the name-based row ids.
var rowNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("aucscore/synth")) //nolint:gochecknoglobals // fixed namespace

// Options configures Generate.
type Options struct {
	Rows    int
	Classes int
	// EmptyClasses is how many label columns have no positive at all.
	// They come last.
	EmptyClasses int
	PositiveRate float64
	// Noise is the standard deviation added to the ideal score.
	Noise       float64
	Seed        uint64
	RowIDColumn string
}

// DefaultOptions returns the generator defaults.
func DefaultOptions() Options {
	return Options{
		Rows:         DefaultRows,
		Classes:      DefaultClasses,
		PositiveRate: DefaultPositiveRate,
		Noise:        DefaultNoise,
		RowIDColumn:  DefaultRowIDColumn,
	}
}

// Validate checks the option ranges.
func (o Options) Validate() error {
	switch {
	case o.Rows < 2:
		return fmt.Errorf("%w: rows must be at least 2, got %d", ErrInvalidOptions, o.Rows)
	case o.Classes < 1:
		return fmt.Errorf("%w: classes must be positive, got %d", ErrInvalidOptions, o.Classes)
	case o.EmptyClasses < 0 || o.EmptyClasses >= o.Classes:
		return fmt.Errorf("%w: empty classes must be in [0, %d), got %d", ErrInvalidOptions, o.Classes, o.EmptyClasses)
	case o.PositiveRate <= 0 || o.PositiveRate >= 1:
		return fmt.Errorf("%w: positive rate must be in (0, 1), got %g", ErrInvalidOptions, o.PositiveRate)
	case o.Noise < 0:
		return fmt.Errorf("%w: noise must not be negative, got %g", ErrInvalidOptions, o.Noise)
	}
	return nil
}

// ClassName returns the label column name for class i.
func ClassName(i int) string {
	return fmt.Sprintf("class_%02d", i)
}

// RowID returns the stable row id of row i for seed.
func RowID(seed uint64, i int) string {
	return uuid.NewSHA1(rowNamespace, fmt.Appendf(nil, "%d/%d", seed, i)).String()
}

// Generate builds a solution with binary labels and a submission with noisy
// scores over the same rows. Output depends only on opts.
//
// Every non-empty class has at least one positive and one negative row.
func Generate(opts Options) (solution, submission *table.Frame, err error) {
	if opts.RowIDColumn == "" {
		opts.RowIDColumn = DefaultRowIDColumn
	}
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)) //nolint:gosec // reproducible data, not secrets

	ids := make([]string, opts.Rows)
	for i := range ids {
		ids[i] = RowID(opts.Seed, i)
	}

	solCols := []table.Column{table.Strings(opts.RowIDColumn, ids...)}
	subCols := []table.Column{table.Strings(opts.RowIDColumn, ids...)}

	scored := opts.Classes - opts.EmptyClasses
	for c := 0; c < opts.Classes; c++ {
		labels := make([]int64, opts.Rows)
		if c < scored {
			for i := range labels {
				if rng.Float64() < opts.PositiveRate {
					labels[i] = 1
				}
			}
			ensureBothClasses(labels, c)
		}

		scores := make([]float64, opts.Rows)
		for i, y := range labels {
			ideal := 0.25 + 0.5*float64(y)
			scores[i] = clamp01(ideal + opts.Noise*rng.NormFloat64())
		}

		solCols = append(solCols, table.Ints(ClassName(c), labels...))
		subCols = append(subCols, table.Floats(ClassName(c), scores...))
	}

	if solution, err = table.New(solCols...); err != nil {
		return nil, nil, err
	}
	if submission, err = table.New(subCols...); err != nil {
		return nil, nil, err
	}
	return solution, submission, nil
}

func ensureBothClasses(labels []int64, c int) {
	var pos, neg bool
	for _, y := range labels {
		if y == 1 {
			pos = true
		} else {
			neg = true
		}
	}
	n := len(labels)
	if !pos {
		labels[c%n] = 1
	}
	if !neg {
		labels[(c+1)%n] = 0
	}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
