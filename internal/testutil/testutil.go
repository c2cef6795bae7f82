// Package testutil provides shared test utilities and fixtures.
//
// This package centralises the construction of well-formed .vec file
// contents so format tests do not each hand-roll header strings.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/openpiv/pivgo/internal/fsutil"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// VecHeader builds a canonical TSI-style .vec header line for a
// rows x cols grid with the given inter-frame interval in microseconds.
func VecHeader(rows, cols int, dt float64) string {
	return fmt.Sprintf(`TITLE="B00001.vec" VARIABLES="X mm", "Y mm", "U m/s", "V m/s", "CHC", DATASETAUXDATA MicrosecondsPerDeltaT="%.1f" ZONE I=%d, J=%d, F=POINT`, dt, rows, cols)
}

// PixelHeader is VecHeader with pixel displacement units instead of
// physical ones.
func PixelHeader(rows, cols int, dt float64) string {
	return fmt.Sprintf(`TITLE="B00001.vec" VARIABLES="X pix", "Y pix", "U pixel", "V pixel", "CHC", DATASETAUXDATA MicrosecondsPerDeltaT="%.1f" ZONE I=%d, J=%d, F=POINT`, dt, rows, cols)
}

// VecBody builds rows*cols comma-delimited data rows in row-major scan
// order. Point (i, j) sits at x = j, y = i with u = i*cols+j plus the
// offset, v = -u and cnc = 1, so every cell value is predictable from
// its grid position.
func VecBody(rows, cols int, offset float64) string {
	var b strings.Builder
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			u := float64(i*cols+j) + offset
			fmt.Fprintf(&b, "%.3f, %.3f, %.3f, %.3f, %.1f\n", float64(j), float64(i), u, -u, 1.0)
		}
	}
	return b.String()
}

// VecFile builds a complete well-formed .vec file.
func VecFile(rows, cols int, dt, offset float64) string {
	return VecHeader(rows, cols, dt) + "\n" + VecBody(rows, cols, offset)
}

// WriteVec stores contents under path in the in-memory filesystem,
// failing the test on error.
func WriteVec(t *testing.T, fsys *fsutil.MemoryFileSystem, path, contents string) {
	t.Helper()
	if err := fsys.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
}
