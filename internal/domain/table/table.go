// Package table models a data frame: an ordered set of named columns over
// aligned rows, with an explicit value kind per column.
//
// Frames are immutable once built. Operations that drop or pick columns
// return new frames and leave the receiver untouched.
package table

import (
	"fmt"
	"math"
)

// Kind is the value kind of a column.
type Kind int

// Column kinds. Bool counts as numeric.
const (
	KindFloat Kind = iota
	KindInt
	KindBool
	KindString
)

// Numeric reports whether values of this kind can be scored.
func (k Kind) Numeric() bool {
	return k == KindFloat || k == KindInt || k == KindBool
}

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float64"
	case KindInt:
		return "int64"
	case KindBool:
		return "bool"
	case KindString:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field describes one column of a frame.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the ordered list of fields of a frame.
type Schema []Field

// Column holds the cells of one named column.
// Numeric kinds keep their cells in Values (NaN marks a missing cell).
// Raw keeps the original text when the column was parsed; it is the only
// storage for KindString columns.
type Column struct {
	Name   string
	Kind   Kind
	Values []float64
	Raw    []string
}

// Len returns the number of cells in the column.
func (c Column) Len() int {
	if c.Kind.Numeric() {
		return len(c.Values)
	}
	return len(c.Raw)
}

func (c Column) clone() Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	if c.Values != nil {
		out.Values = append([]float64(nil), c.Values...)
	}
	if c.Raw != nil {
		out.Raw = append([]string(nil), c.Raw...)
	}
	return out
}

// Floats builds a float64 column.
func Floats(name string, values ...float64) Column {
	return Column{Name: name, Kind: KindFloat, Values: append([]float64(nil), values...)}
}

// Ints builds an int64 column.
func Ints(name string, values ...int64) Column {
	vals := make([]float64, len(values))
	for i, v := range values {
		vals[i] = float64(v)
	}
	return Column{Name: name, Kind: KindInt, Values: vals}
}

// Bools builds a bool column stored as 0/1.
func Bools(name string, values ...bool) Column {
	vals := make([]float64, len(values))
	for i, v := range values {
		if v {
			vals[i] = 1
		}
	}
	return Column{Name: name, Kind: KindBool, Values: vals}
}

// Strings builds an object column.
func Strings(name string, values ...string) Column {
	return Column{Name: name, Kind: KindString, Raw: append([]string(nil), values...)}
}

// Frame is an ordered set of equally long named columns.
type Frame struct {
	cols  []Column
	index map[string]int
	rows  int
}

// New builds a frame from columns. Column names must be unique and all
// columns must have the same length.
func New(cols ...Column) (*Frame, error) {
	f := &Frame{
		cols:  make([]Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if _, dup := f.index[c.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		if i == 0 {
			f.rows = c.Len()
		} else if c.Len() != f.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", ErrRaggedColumns, c.Name, c.Len(), f.rows)
		}
		f.index[c.Name] = len(f.cols)
		f.cols = append(f.cols, c)
	}
	return f, nil
}

// MustNew is New for statically known columns; it panics on error.
func MustNew(cols ...Column) *Frame {
	f, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int { return f.rows }

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.cols) }

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// Schema returns the ordered fields of the frame.
func (f *Frame) Schema() Schema {
	s := make(Schema, len(f.cols))
	for i, c := range f.cols {
		s[i] = Field{Name: c.Name, Kind: c.Kind}
	}
	return s
}

// Has reports whether the frame has a column with the given name.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column returns a copy of the named column.
func (f *Frame) Column(name string) (Column, error) {
	i, ok := f.index[name]
	if !ok {
		return Column{}, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return f.cols[i].clone(), nil
}

// Float returns a copy of the numeric cells of the named column.
func (f *Frame) Float(name string) ([]float64, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	c := f.cols[i]
	if !c.Kind.Numeric() {
		return nil, fmt.Errorf("%w: %q is %s", ErrNotNumeric, name, c.Kind)
	}
	return append([]float64(nil), c.Values...), nil
}

// Sum adds up the numeric cells of the named column, skipping missing cells.
func (f *Frame) Sum(name string) (float64, error) {
	i, ok := f.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	c := f.cols[i]
	if !c.Kind.Numeric() {
		return 0, fmt.Errorf("%w: %q is %s", ErrNotNumeric, name, c.Kind)
	}
	var sum float64
	for _, v := range c.Values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
	}
	return sum, nil
}

// NonNumeric returns the fields whose kind is not numeric, in column order.
func (f *Frame) NonNumeric() []Field {
	var out []Field
	for _, field := range f.Schema() {
		if !field.Kind.Numeric() {
			out = append(out, field)
		}
	}
	return out
}

// AllNumeric reports whether every column is numeric.
func (f *Frame) AllNumeric() bool {
	return len(f.NonNumeric()) == 0
}

// HasBools reports whether any column is of bool kind.
func (f *Frame) HasBools() bool {
	for _, c := range f.cols {
		if c.Kind == KindBool {
			return true
		}
	}
	return false
}

// Without returns a new frame with the named column removed.
func (f *Frame) Without(name string) (*Frame, error) {
	if !f.Has(name) {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	keep := make([]string, 0, len(f.cols)-1)
	for _, c := range f.cols {
		if c.Name != name {
			keep = append(keep, c.Name)
		}
	}
	return f.Select(keep...)
}

// Select returns a new frame holding the named columns in the given order.
// Column data is shared with the receiver; frames never modify it.
func (f *Frame) Select(names ...string) (*Frame, error) {
	out := &Frame{
		cols:  make([]Column, 0, len(names)),
		index: make(map[string]int, len(names)),
		rows:  f.rows,
	}
	for _, name := range names {
		i, ok := f.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		if _, dup := out.index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		out.index[name] = len(out.cols)
		out.cols = append(out.cols, f.cols[i])
	}
	return out, nil
}

// Matrix returns the named numeric columns as a column-major matrix copy.
func (f *Frame) Matrix(names ...string) ([][]float64, error) {
	m := make([][]float64, 0, len(names))
	for _, name := range names {
		vals, err := f.Float(name)
		if err != nil {
			return nil, err
		}
		m = append(m, vals)
	}
	return m, nil
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		cols:  make([]Column, len(f.cols)),
		index: make(map[string]int, len(f.cols)),
		rows:  f.rows,
	}
	for i, c := range f.cols {
		out.cols[i] = c.clone()
		out.index[c.Name] = i
	}
	return out
}

// Cell returns the text form of one cell, used when writing frames out.
func (f *Frame) Cell(col, row int) string {
	c := f.cols[col]
	if row < len(c.Raw) {
		return c.Raw[row]
	}
	return formatValue(c.Kind, c.Values[row])
}

func formatValue(k Kind, v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	switch k {
	case KindBool:
		if v != 0 {
			return "True"
		}
		return "False"
	case KindInt:
		return fmt.Sprintf("%d", int64(v))
	default:
		return fmt.Sprintf("%g", v)
	}
}
