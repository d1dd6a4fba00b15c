package table_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/aucscore/internal/domain/table"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFrame_New(t *testing.T) {
	Convey("Given columns of equal length", t, func() {
		f, err := table.New(
			table.Strings("row_id", "a", "b", "c"),
			table.Ints("bird", 1, 0, 1),
			table.Floats("frog", 0.5, math.NaN(), 0.1),
		)

		Convey("Then the frame is built in column order", func() {
			So(err, ShouldBeNil)
			So(f.NumRows(), ShouldEqual, 3)
			So(f.NumCols(), ShouldEqual, 3)
			So(f.Names(), ShouldResemble, []string{"row_id", "bird", "frog"})
		})

		Convey("And the schema reports each kind", func() {
			So(f.Schema(), ShouldResemble, table.Schema{
				{Name: "row_id", Kind: table.KindString},
				{Name: "bird", Kind: table.KindInt},
				{Name: "frog", Kind: table.KindFloat},
			})
		})
	})

	Convey("Given duplicate column names", t, func() {
		_, err := table.New(table.Ints("a", 1), table.Ints("a", 2))

		Convey("Then New fails", func() {
			So(errors.Is(err, table.ErrDuplicateColumn), ShouldBeTrue)
		})
	})

	Convey("Given columns of different lengths", t, func() {
		_, err := table.New(table.Ints("a", 1, 2), table.Ints("b", 1))

		Convey("Then New fails", func() {
			So(errors.Is(err, table.ErrRaggedColumns), ShouldBeTrue)
		})
	})
}

func TestFrame_Without(t *testing.T) {
	Convey("Given a frame with an identifier column", t, func() {
		f := table.MustNew(
			table.Strings("row_id", "a", "b"),
			table.Ints("x", 1, 0),
			table.Ints("y", 0, 1),
		)

		Convey("When the identifier is dropped", func() {
			out, err := f.Without("row_id")

			Convey("Then a new frame without it is returned", func() {
				So(err, ShouldBeNil)
				So(out.Names(), ShouldResemble, []string{"x", "y"})
				So(out.NumRows(), ShouldEqual, 2)
			})

			Convey("And the original frame is untouched", func() {
				So(f.Names(), ShouldResemble, []string{"row_id", "x", "y"})
				So(f.Has("row_id"), ShouldBeTrue)
			})
		})

		Convey("When an unknown column is dropped", func() {
			_, err := f.Without("nope")

			Convey("Then it fails with ErrColumnNotFound", func() {
				So(errors.Is(err, table.ErrColumnNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestFrame_NumericAccess(t *testing.T) {
	Convey("Given a mixed frame", t, func() {
		f := table.MustNew(
			table.Strings("name", "a", "b", "c"),
			table.Floats("score", 0.25, math.NaN(), 0.5),
			table.Bools("flag", true, false, true),
		)

		Convey("Then Sum skips missing cells", func() {
			sum, err := f.Sum("score")
			So(err, ShouldBeNil)
			So(sum, ShouldEqual, 0.75)
		})

		Convey("Then bool columns sum their true cells", func() {
			sum, err := f.Sum("flag")
			So(err, ShouldBeNil)
			So(sum, ShouldEqual, 2)
		})

		Convey("Then object columns cannot be read as floats", func() {
			_, err := f.Float("name")
			So(errors.Is(err, table.ErrNotNumeric), ShouldBeTrue)
		})

		Convey("Then NonNumeric lists only the object column", func() {
			So(f.NonNumeric(), ShouldResemble, []table.Field{{Name: "name", Kind: table.KindString}})
			So(f.AllNumeric(), ShouldBeFalse)
			So(f.HasBools(), ShouldBeTrue)
		})

		Convey("Then Matrix is column-major and detached", func() {
			m, err := f.Matrix("flag", "score")
			So(err, ShouldBeNil)
			So(len(m), ShouldEqual, 2)
			So(m[0], ShouldResemble, []float64{1, 0, 1})
			m[0][0] = 42
			again, _ := f.Float("flag")
			So(again[0], ShouldEqual, 1)
		})
	})
}

func TestFrame_SelectAndClone(t *testing.T) {
	Convey("Given a frame", t, func() {
		f := table.MustNew(table.Ints("a", 1, 2), table.Ints("b", 3, 4), table.Ints("c", 5, 6))

		Convey("Then Select reorders columns", func() {
			out, err := f.Select("c", "a")
			So(err, ShouldBeNil)
			So(out.Names(), ShouldResemble, []string{"c", "a"})
		})

		Convey("Then Select rejects unknown names", func() {
			_, err := f.Select("a", "z")
			So(errors.Is(err, table.ErrColumnNotFound), ShouldBeTrue)
		})

		Convey("Then Clone copies cell data", func() {
			c := f.Clone()
			col, err := c.Column("a")
			So(err, ShouldBeNil)
			So(col.Values, ShouldResemble, []float64{1, 2})
			So(c.Names(), ShouldResemble, f.Names())
		})
	})
}

func TestKind_String(t *testing.T) {
	Convey("Kinds print like data-frame dtypes", t, func() {
		So(table.KindFloat.String(), ShouldEqual, "float64")
		So(table.KindInt.String(), ShouldEqual, "int64")
		So(table.KindBool.String(), ShouldEqual, "bool")
		So(table.KindString.String(), ShouldEqual, "object")
		So(table.KindString.Numeric(), ShouldBeFalse)
		So(table.KindBool.Numeric(), ShouldBeTrue)
	})
}
