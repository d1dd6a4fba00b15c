// Package csvio reads and writes tables as CSV with a header row.
//
// Column kinds are inferred from the cells, the way a dataframe loader does:
// integer columns become int64, numeric columns (or numeric with blanks)
// become float64, columns of True/False become bool, and anything else is
// an object column. Blank cells and the usual missing-value markers (NA,
// N/A, null, None, ...) in numeric columns are read as NaN. A UTF-8 byte
// order mark before the header is dropped.
package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/okian/aucscore/internal/domain/table"
)

const bom = "\ufeff"

// missingTokens are cell values read as a missing number.
var missingTokens = map[string]struct{}{ //nolint:gochecknoglobals // lookup table
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {},
	"nan": {}, "null": {},
}

// Read parses a CSV stream into a frame.
func Read(r io.Reader) (*table.Frame, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	cells := make([][]string, len(header))
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRead, err)
		}
		for i, v := range rec {
			cells[i] = append(cells[i], v)
		}
	}

	cols := make([]table.Column, len(header))
	for i, name := range header {
		cols[i] = infer(strings.TrimSpace(name), cells[i])
	}
	return table.New(cols...)
}

// ReadFile parses the CSV file at path.
func ReadFile(path string) (*table.Frame, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}

// Write renders a frame as CSV with a header row.
func Write(w io.Writer, f *table.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Names()); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	rec := make([]string, f.NumCols())
	for row := 0; row < f.NumRows(); row++ {
		for col := range rec {
			rec[col] = f.Cell(col, row)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// WriteFile writes a frame to path, replacing any existing file.
func WriteFile(path string, f *table.Frame) (err error) {
	out, err := os.Create(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrWrite, cerr)
		}
	}()
	return Write(out, f)
}

// infer picks the narrowest kind that holds every cell.
func infer(name string, raw []string) table.Column {
	if raw == nil {
		raw = []string{}
	}
	if vals, ok := parseBools(raw); ok {
		return table.Column{Name: name, Kind: table.KindBool, Values: vals, Raw: raw}
	}
	if vals, blanks, ok := parseNumbers(raw); ok {
		kind := table.KindFloat
		if !blanks && allIntegers(raw) {
			kind = table.KindInt
		}
		return table.Column{Name: name, Kind: kind, Values: vals, Raw: raw}
	}
	return table.Column{Name: name, Kind: table.KindString, Raw: raw}
}

func parseBools(raw []string) ([]float64, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	vals := make([]float64, len(raw))
	for i, s := range raw {
		switch strings.TrimSpace(s) {
		case "True", "true", "TRUE":
			vals[i] = 1
		case "False", "false", "FALSE":
			vals[i] = 0
		default:
			return nil, false
		}
	}
	return vals, true
}

// parseNumbers reads every cell as a float; blank and missing-value cells
// become NaN.
func parseNumbers(raw []string) (vals []float64, blanks, ok bool) {
	vals = make([]float64, len(raw))
	for i, s := range raw {
		s = strings.TrimSpace(s)
		if _, missing := missingTokens[s]; missing || s == "" {
			vals[i] = math.NaN()
			blanks = true
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false, false
		}
		vals[i] = v
	}
	return vals, blanks, true
}

func allIntegers(raw []string) bool {
	if len(raw) == 0 {
		return false
	}
	for _, s := range raw {
		if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
			return false
		}
	}
	return true
}
