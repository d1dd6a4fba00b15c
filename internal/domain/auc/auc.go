// Package auc computes the area under the ROC curve for binary ground truth
// and continuous scores, with one-vs-rest averaging over label columns.
package auc

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Average selects how per-column AUC values are combined.
type Average string

// Averaging modes.
const (
	// Macro is the unweighted mean over columns.
	Macro Average = "macro"
	// Weighted weights each column by its number of positives.
	Weighted Average = "weighted"
	// Micro scores all cells of all columns as a single binary problem.
	Micro Average = "micro"
)

// ParseAverage parses an averaging mode name (case-insensitive).
func ParseAverage(s string) (Average, error) {
	switch Average(strings.ToLower(strings.TrimSpace(s))) {
	case "", Macro:
		return Macro, nil
	case Weighted:
		return Weighted, nil
	case Micro:
		return Micro, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAverage, s)
	}
}

// Binary returns the ROC AUC of scores against binary labels.
// Tied scores count one half, which equals the trapezoidal area under the
// ROC curve.
func Binary(yTrue, yScore []float64) (float64, error) {
	pos, neg, err := validate(yTrue, yScore)
	if err != nil {
		return 0, err
	}

	n := len(yScore)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return yScore[order[a]] < yScore[order[b]] })

	// Sum of 1-based average ranks of the positive samples.
	var rankSum float64
	for i := 0; i < n; {
		j := i
		for j+1 < n && yScore[order[j+1]] == yScore[order[i]] {
			j++
		}
		rank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			if yTrue[order[k]] == 1 {
				rankSum += rank
			}
		}
		i = j + 1
	}

	p := float64(pos)
	u := rankSum - p*(p+1)/2
	return u / (p * float64(neg)), nil
}

// Score combines per-column AUC values of column-major truth and score
// matrices using the given averaging mode.
func Score(truth, scores [][]float64, avg Average) (float64, error) {
	if err := checkShape(truth, scores); err != nil {
		return 0, err
	}

	switch avg {
	case Macro, "":
		var sum float64
		for c := range truth {
			v, err := Binary(truth[c], scores[c])
			if err != nil {
				return 0, err
			}
			sum += v
		}
		return sum / float64(len(truth)), nil

	case Weighted:
		var sum, weights float64
		for c := range truth {
			v, err := Binary(truth[c], scores[c])
			if err != nil {
				return 0, err
			}
			w := positives(truth[c])
			sum += v * w
			weights += w
		}
		if weights == 0 {
			return 0, nil
		}
		return sum / weights, nil

	case Micro:
		var flatTruth, flatScores []float64
		for c := range truth {
			flatTruth = append(flatTruth, truth[c]...)
			flatScores = append(flatScores, scores[c]...)
		}
		return Binary(flatTruth, flatScores)

	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAverage, string(avg))
	}
}

func checkShape(truth, scores [][]float64) error {
	if len(truth) == 0 || len(truth[0]) == 0 {
		return ErrEmptyInput
	}
	rows := len(truth[0])
	if len(scores) != len(truth) {
		return fmt.Errorf("%w: y_true has shape (%d, %d), y_score has %d columns", ErrShapeMismatch, rows, len(truth), len(scores))
	}
	for c := range truth {
		if len(truth[c]) != rows || len(scores[c]) != rows {
			return fmt.Errorf("%w: column %d has %d labels and %d scores, expected %d", ErrShapeMismatch, c, len(truth[c]), len(scores[c]), rows)
		}
	}
	return nil
}

// validate checks one column pair and counts its positives and negatives.
func validate(yTrue, yScore []float64) (pos, neg int, err error) {
	if len(yTrue) != len(yScore) {
		return 0, 0, fmt.Errorf("%w: found input variables with inconsistent numbers of samples: [%d, %d]", ErrShapeMismatch, len(yTrue), len(yScore))
	}
	if len(yTrue) == 0 {
		return 0, 0, ErrEmptyInput
	}
	for i := range yScore {
		if math.IsNaN(yTrue[i]) || math.IsNaN(yScore[i]) {
			return 0, 0, ErrNaN
		}
		if math.IsInf(yScore[i], 0) {
			return 0, 0, ErrInfinite
		}
		switch yTrue[i] {
		case 1:
			pos++
		case 0:
			neg++
		default:
			return 0, 0, ErrNotBinary
		}
	}
	if pos == 0 || neg == 0 {
		return 0, 0, ErrSingleClass
	}
	return pos, neg, nil
}

func positives(col []float64) float64 {
	var n float64
	for _, v := range col {
		if v == 1 {
			n++
		}
	}
	return n
}
