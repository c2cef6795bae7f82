package vec

import (
	"strconv"
	"strings"

	"github.com/openpiv/pivgo/internal/fsutil"
)

// deltaTMarker introduces the inter-frame interval in a .vec header.
const deltaTMarker = "MicrosecondsPerDeltaT"

// ReadDeltaT extracts the inter-frame time interval, in microseconds,
// from the named file's header. The value is the first quoted field
// after the MicrosecondsPerDeltaT marker. Unlike unit resolution there
// is no fallback: a header without the marker fails with *ParseError.
func ReadDeltaT(fsys fsutil.FileSystem, path string) (float64, error) {
	line, err := readHeaderLine(fsys, path)
	if err != nil {
		return 0, err
	}

	marker := strings.Index(line, deltaTMarker)
	if marker < 0 {
		return 0, parseErrorf(path, "header has no %s field", deltaTMarker)
	}

	fields := strings.Split(line[marker:], `"`)
	if len(fields) < 2 {
		return 0, parseErrorf(path, "%s value is not quoted", deltaTMarker)
	}

	dt, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return 0, parseErrorf(path, "%s value %q: %v", deltaTMarker, fields[1], err)
	}

	return dt, nil
}
