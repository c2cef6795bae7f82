package vec

import (
	"bufio"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/openpiv/pivgo/internal/field"
	"github.com/openpiv/pivgo/internal/fsutil"
)

// Extension is the vector-field file suffix matched by LoadDirectory.
const Extension = ".vec"

// DirectoryOptions configures a directory load.
type DirectoryOptions struct {
	// Order defaults to RowMajor when empty.
	Order ScanOrder

	// ValidateGrid checks every file's body row count against the
	// first header's rows*cols before loading, turning a mid-batch
	// reshape failure into an early, named error. Off by default to
	// match the trusting single-header behavior described below.
	ValidateGrid bool
}

// LoadDirectory loads every *.vec file in dir into one sequence along a
// new leading time axis. File enumeration is lexical, so frame order is
// stable across platforms; name files so that lexical order is time
// order.
//
// Only the first file's header is parsed; all files are assumed to
// share its grid shape, variables and units. The inter-frame interval
// is still read per file. Any per-file failure aborts the whole load
// with no partial result.
func LoadDirectory(fsys fsutil.FileSystem, dir string, opts DirectoryOptions) (*field.Sequence, error) {
	paths, err := fsys.Glob(filepath.Join(dir, "*"+Extension))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no %s files in %s: %w", Extension, dir, fs.ErrNotExist)
	}

	h, err := ParseHeader(fsys, paths[0])
	if err != nil {
		return nil, err
	}

	frames := make([]*field.Frame, 0, len(paths))
	for _, path := range paths {
		if opts.ValidateGrid {
			if err := checkBodyRows(fsys, path, h.Rows*h.Cols); err != nil {
				return nil, err
			}
		}

		frame, err := LoadField(fsys, path, LoadOptions{
			Rows:      h.Rows,
			Cols:      h.Cols,
			Variables: h.Variables,
			Units:     h.Units,
			Order:     opts.Order,
		})
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}

	seq, err := field.Concat(frames)
	if err != nil {
		return nil, err
	}
	seq.Variables = h.Variables
	seq.Units = h.Units

	return seq, nil
}

// checkBodyRows counts the non-blank data rows of the named file and
// fails with *ParseError when the count differs from want.
func checkBodyRows(fsys fsutil.FileSystem, path string, want int) error {
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		n++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if n != want {
		return parseErrorf(path, "body has %d data rows, want %d (grid mismatch against first header)", n, want)
	}
	return nil
}
