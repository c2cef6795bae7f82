package vec

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/openpiv/pivgo/internal/field"
	"github.com/openpiv/pivgo/internal/fsutil"
)

// bodyColumns is the number of numeric fields per data row:
// x, y, u, v and the validity/signal-to-noise channel.
const bodyColumns = 5

// ScanOrder selects how the flat body rows map onto the (rows, cols)
// grid.
type ScanOrder string

// Supported scan orders. The format's producers write row-major bodies;
// ColumnMajor exists for files from tools that transpose the scan.
const (
	RowMajor    ScanOrder = "row"
	ColumnMajor ScanOrder = "column"
)

// LoadOptions carries precomputed grid metadata into LoadField. The
// zero value means "read everything from the file".
type LoadOptions struct {
	// Rows and Cols give the grid shape; zero means unknown. Supplying
	// only one of them still triggers a full header parse that replaces
	// all four of rows, cols, variables and units, discarding any
	// partially supplied values.
	Rows int
	Cols int

	// Variables and Units label the columns; normally taken from the
	// same header parse that produced Rows and Cols.
	Variables []string
	Units     []string

	// DeltaT overrides header extraction of the inter-frame interval
	// when non-nil.
	DeltaT *float64

	// Order defaults to RowMajor when empty.
	Order ScanOrder
}

// LoadField reads one .vec file and assembles it into a labeled frame.
//
// The body must hold exactly rows*cols comma-delimited data rows of
// bodyColumns numeric fields each. The x axis is recovered from the
// first grid row's x column and the y axis from the first grid column's
// y column, which assumes the body is stored in the configured scan
// order.
//
// Metadata is attached unless variables are nil while units are not; a
// caller that supplies units without variables gets a bare frame. That
// asymmetry is long-standing loader behavior that downstream tooling
// relies on.
func LoadField(fsys fsutil.FileSystem, path string, opts LoadOptions) (*field.Frame, error) {
	variables, unitNames := opts.Variables, opts.Units
	rows, cols := opts.Rows, opts.Cols

	if rows == 0 || cols == 0 {
		h, err := ParseHeader(fsys, path)
		if err != nil {
			return nil, err
		}
		variables, unitNames, rows, cols = h.Variables, h.Units, h.Rows, h.Cols
	}

	dt := 0.0
	if opts.DeltaT != nil {
		dt = *opts.DeltaT
	} else {
		var err error
		dt, err = ReadDeltaT(fsys, path)
		if err != nil {
			return nil, err
		}
	}

	if rows <= 0 || cols <= 0 {
		return nil, parseErrorf(path, "grid shape %dx%d is not positive", rows, cols)
	}

	body, n, err := readBody(fsys, path)
	if err != nil {
		return nil, err
	}
	if n != rows*cols {
		return nil, parseErrorf(path, "body has %d data rows, want rows*cols = %d*%d = %d", n, rows, cols, rows*cols)
	}

	flat := func(i, j int) int {
		if opts.Order == ColumnMajor {
			return j*rows + i
		}
		return i*cols + j
	}

	x := make([]float64, cols)
	for j := 0; j < cols; j++ {
		x[j] = body[flat(0, j)*bodyColumns+0]
	}
	y := make([]float64, rows)
	for i := 0; i < rows; i++ {
		y[i] = body[flat(i, 0)*bodyColumns+1]
	}

	u := mat.NewDense(rows, cols, nil)
	v := mat.NewDense(rows, cols, nil)
	cnc := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			base := flat(i, j) * bodyColumns
			u.Set(i, j, body[base+2])
			v.Set(i, j, body[base+3])
			cnc.Set(i, j, body[base+4])
		}
	}

	frame := &field.Frame{X: x, Y: y, U: u, V: v, Cnc: cnc}

	if variables != nil || unitNames == nil {
		frame.Attrs = &field.Attrs{Variables: variables, Units: unitNames, DeltaT: dt}
	}

	return frame, nil
}

// readBody parses every data row after the header line into a flat
// slice of bodyColumns values per row, returning the slice and the row
// count. Blank lines are skipped; rows with fewer than bodyColumns
// comma-delimited fields or non-numeric values fail with *ParseError.
// Extra trailing fields are ignored.
func readBody(fsys fsutil.FileSystem, path string) ([]float64, int, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var data []float64
	n := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < bodyColumns {
			return nil, 0, parseErrorf(path, "line %d has %d fields, want %d", lineNo, len(parts), bodyColumns)
		}

		for c := 0; c < bodyColumns; c++ {
			val, err := strconv.ParseFloat(strings.TrimSpace(parts[c]), 64)
			if err != nil {
				return nil, 0, parseErrorf(path, "line %d field %d: %v", lineNo, c+1, err)
			}
			data = append(data, val)
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}

	return data, n, nil
}
