package auc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/aucscore/internal/domain/auc"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBinary(t *testing.T) {
	Convey("Given binary labels and scores", t, func() {
		Convey("When positives are ranked strictly above negatives", func() {
			v, err := auc.Binary([]float64{1, 0, 1}, []float64{0.9, 0.2, 0.8})

			Convey("Then the AUC is 1", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 1.0)
			})
		})

		Convey("When the ranking is inverted", func() {
			v, err := auc.Binary([]float64{1, 0, 1, 0}, []float64{0.1, 0.9, 0.2, 0.8})

			Convey("Then the AUC is 0", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 0.0)
			})
		})

		Convey("When three of four pairs are ordered correctly", func() {
			v, err := auc.Binary([]float64{1, 0, 1, 0}, []float64{0.9, 0.8, 0.3, 0.1})

			Convey("Then the AUC is 0.75", func() {
				So(err, ShouldBeNil)
				So(v, ShouldAlmostEqual, 0.75, 1e-12)
			})
		})

		Convey("When every score is tied", func() {
			v, err := auc.Binary([]float64{1, 0, 0, 1, 0}, []float64{0.5, 0.5, 0.5, 0.5, 0.5})

			Convey("Then ties count one half", func() {
				So(err, ShouldBeNil)
				So(v, ShouldAlmostEqual, 0.5, 1e-12)
			})
		})

		Convey("When a positive ties with one negative", func() {
			// pairs: (0.7 vs 0.7)=0.5, (0.7 vs 0.1)=1, (0.9 vs 0.7)=1, (0.9 vs 0.1)=1
			v, err := auc.Binary([]float64{1, 0, 1, 0}, []float64{0.7, 0.7, 0.9, 0.1})

			Convey("Then the tie contributes one half", func() {
				So(err, ShouldBeNil)
				So(v, ShouldAlmostEqual, 3.5/4, 1e-12)
			})
		})
	})

	Convey("Given degenerate inputs", t, func() {
		Convey("Then a single class is rejected", func() {
			_, err := auc.Binary([]float64{1, 1}, []float64{0.2, 0.3})
			So(errors.Is(err, auc.ErrSingleClass), ShouldBeTrue)
		})

		Convey("Then NaN scores are rejected", func() {
			_, err := auc.Binary([]float64{1, 0}, []float64{math.NaN(), 0.3})
			So(errors.Is(err, auc.ErrNaN), ShouldBeTrue)
		})

		Convey("Then infinite scores are rejected", func() {
			_, err := auc.Binary([]float64{1, 0}, []float64{math.Inf(1), 0.3})
			So(errors.Is(err, auc.ErrInfinite), ShouldBeTrue)
		})

		Convey("Then non-binary labels are rejected", func() {
			_, err := auc.Binary([]float64{2, 0}, []float64{0.1, 0.3})
			So(errors.Is(err, auc.ErrNotBinary), ShouldBeTrue)
		})

		Convey("Then length mismatches are rejected", func() {
			_, err := auc.Binary([]float64{1, 0, 1}, []float64{0.1, 0.3})
			So(errors.Is(err, auc.ErrShapeMismatch), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "[3, 2]")
		})

		Convey("Then empty input is rejected", func() {
			_, err := auc.Binary(nil, nil)
			So(errors.Is(err, auc.ErrEmptyInput), ShouldBeTrue)
		})
	})
}

func TestScore(t *testing.T) {
	Convey("Given two label columns", t, func() {
		truth := [][]float64{
			{1, 0, 1, 0},
			{0, 1, 0, 0},
		}
		scores := [][]float64{
			{0.9, 0.8, 0.3, 0.1}, // 0.75
			{0.2, 0.9, 0.3, 0.1}, // 1.0
		}

		Convey("Then macro is the unweighted mean", func() {
			v, err := auc.Score(truth, scores, auc.Macro)
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, (0.75+1.0)/2, 1e-12)
		})

		Convey("Then weighted uses positive support", func() {
			v, err := auc.Score(truth, scores, auc.Weighted)
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, (0.75*2+1.0*1)/3, 1e-12)
		})

		Convey("Then micro scores the flattened cells", func() {
			v, err := auc.Score(truth, scores, auc.Micro)
			flat, ferr := auc.Binary(
				[]float64{1, 0, 1, 0, 0, 1, 0, 0},
				[]float64{0.9, 0.8, 0.3, 0.1, 0.2, 0.9, 0.3, 0.1},
			)
			So(err, ShouldBeNil)
			So(ferr, ShouldBeNil)
			So(v, ShouldAlmostEqual, flat, 1e-12)
		})

		Convey("Then an unknown mode is rejected", func() {
			_, err := auc.Score(truth, scores, auc.Average("samples"))
			So(errors.Is(err, auc.ErrUnknownAverage), ShouldBeTrue)
		})
	})

	Convey("Given mismatched matrices", t, func() {
		_, err := auc.Score([][]float64{{1, 0}}, [][]float64{{0.1, 0.2}, {0.3, 0.4}}, auc.Macro)

		Convey("Then Score fails with a shape error", func() {
			So(errors.Is(err, auc.ErrShapeMismatch), ShouldBeTrue)
		})
	})

	Convey("Given no columns", t, func() {
		_, err := auc.Score(nil, nil, auc.Macro)

		Convey("Then Score fails with an empty input error", func() {
			So(errors.Is(err, auc.ErrEmptyInput), ShouldBeTrue)
		})
	})
}

func TestParseAverage(t *testing.T) {
	Convey("ParseAverage accepts known names", t, func() {
		for in, want := range map[string]auc.Average{
			"":         auc.Macro,
			"macro":    auc.Macro,
			"MACRO":    auc.Macro,
			"weighted": auc.Weighted,
			" micro ":  auc.Micro,
		} {
			got, err := auc.ParseAverage(in)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		}

		_, err := auc.ParseAverage("samples")
		So(errors.Is(err, auc.ErrUnknownAverage), ShouldBeTrue)
	})
}
