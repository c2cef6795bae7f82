// Package vec reads PIV vector-field files in the .vec text format
// (TECPLOT-style header produced by TSI Insight and OpenPIV) and
// assembles them into labeled field.Frame and field.Sequence values.
//
// The header grammar is loose and delimiter-inconsistent; the parsers
// here mirror the fixed token offsets the format's producers emit rather
// than attempting a general grammar. Callers that need different layouts
// swap this package, not its callers.
package vec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/openpiv/pivgo/internal/fsutil"
)

// Header is the grid metadata recovered from a .vec file's first line.
type Header struct {
	Variables []string
	Units     []string
	Rows      int
	Cols      int
}

// Fixed token window of the VARIABLES declaration. After normalizing
// separators, variable names sit at even offsets from token 3 and their
// units at even offsets from token 4, both clamped at token 12.
const (
	variableTokenStart = 3
	unitTokenStart     = 4
	tokenWindowEnd     = 12
)

// Trailing zone-declaration offsets: rows is the 5th token from the end
// ("I=<rows>") and cols the 3rd from the end ("J=<cols>").
const (
	rowsFromEnd = 5
	colsFromEnd = 3
)

// headerSeparators folds the delimiters the format mixes freely into
// plain whitespace before tokenizing.
var headerSeparators = strings.NewReplacer(",", " ", "=", " ", `"`, " ")

// ParseHeader reads only the first line of the named file and extracts
// the variable names, unit strings and grid shape from their fixed token
// positions. The offsets are deliberate: headers that deviate from the
// canonical `VARIABLES= "X" "mm" "Y" "mm" ... I=<rows> J=<cols>` shape
// fail with *ParseError rather than being guessed at.
func ParseHeader(fsys fsutil.FileSystem, path string) (Header, error) {
	line, err := readHeaderLine(fsys, path)
	if err != nil {
		return Header{}, err
	}

	tokens := strings.Fields(headerSeparators.Replace(line))

	if len(tokens) < tokenWindowEnd {
		return Header{}, parseErrorf(path, "header has %d tokens, want at least %d", len(tokens), tokenWindowEnd)
	}

	var variables, unitNames []string
	for i := variableTokenStart; i < tokenWindowEnd; i += 2 {
		variables = append(variables, tokens[i])
	}
	for i := unitTokenStart; i < tokenWindowEnd; i += 2 {
		unitNames = append(unitNames, tokens[i])
	}

	rows, err := strconv.Atoi(tokens[len(tokens)-rowsFromEnd])
	if err != nil {
		return Header{}, parseErrorf(path, "row count %q: %v", tokens[len(tokens)-rowsFromEnd], err)
	}
	cols, err := strconv.Atoi(tokens[len(tokens)-colsFromEnd])
	if err != nil {
		return Header{}, parseErrorf(path, "column count %q: %v", tokens[len(tokens)-colsFromEnd], err)
	}

	return Header{Variables: variables, Units: unitNames, Rows: rows, Cols: cols}, nil
}

// readHeaderLine returns the first line of the named file without its
// trailing newline. The file handle is closed on every path. An empty
// file yields an empty line, which each parser rejects in its own
// terms.
func readHeaderLine(fsys fsutil.FileSystem, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}
