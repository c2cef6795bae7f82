package vec

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"

	"github.com/openpiv/pivgo/internal/fsutil"
	"github.com/openpiv/pivgo/internal/testutil"
)

// denseComparer lets go-cmp diff frames that embed gonum matrices.
var denseComparer = cmp.Comparer(func(a, b *mat.Dense) bool {
	return mat.Equal(a, b)
})

func floatPtr(v float64) *float64 { return &v }

func TestLoadField(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	testutil.WriteVec(t, fsys, "run.vec", testutil.VecFile(3, 2, 2000.0, 0))

	frame, err := LoadField(fsys, "run.vec", LoadOptions{})
	if err != nil {
		t.Fatalf("LoadField: %v", err)
	}

	rows, cols := frame.Dims()
	if rows != 3 || cols != 2 {
		t.Fatalf("Dims = (%d, %d), want (3, 2)", rows, cols)
	}

	wantX := []float64{0, 1}
	wantY := []float64{0, 1, 2}
	if diff := cmp.Diff(wantX, frame.X); diff != "" {
		t.Errorf("x axis mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantY, frame.Y); diff != "" {
		t.Errorf("y axis mismatch (-want +got):\n%s", diff)
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			want := float64(i*cols + j)
			if got := frame.U.At(i, j); got != want {
				t.Errorf("u(%d,%d) = %f, want %f", i, j, got, want)
			}
			if got := frame.V.At(i, j); got != -want {
				t.Errorf("v(%d,%d) = %f, want %f", i, j, got, -want)
			}
			if got := frame.Cnc.At(i, j); got != 1 {
				t.Errorf("cnc(%d,%d) = %f, want 1", i, j, got)
			}
		}
	}

	if frame.Attrs == nil {
		t.Fatal("Attrs = nil, want metadata attached")
	}
	if frame.Attrs.DeltaT != 2000.0 {
		t.Errorf("DeltaT = %f, want 2000.0", frame.Attrs.DeltaT)
	}
	wantVars := []string{"X", "Y", "U", "V", "CHC"}
	if diff := cmp.Diff(wantVars, frame.Attrs.Variables); diff != "" {
		t.Errorf("Variables mismatch (-want +got):\n%s", diff)
	}
	wantUnits := []string{"mm", "mm", "m/s", "m/s"}
	if diff := cmp.Diff(wantUnits, frame.Attrs.Units); diff != "" {
		t.Errorf("Units mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFieldExplicitOptionsMatchHeaderParse(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	testutil.WriteVec(t, fsys, "run.vec", testutil.VecFile(4, 3, 150.0, 2))

	implicit, err := LoadField(fsys, "run.vec", LoadOptions{})
	if err != nil {
		t.Fatalf("LoadField (implicit): %v", err)
	}

	explicit, err := LoadField(fsys, "run.vec", LoadOptions{
		Rows:      4,
		Cols:      3,
		Variables: []string{"X", "Y", "U", "V", "CHC"},
		Units:     []string{"mm", "mm", "m/s", "m/s"},
		DeltaT:    floatPtr(150.0),
	})
	if err != nil {
		t.Fatalf("LoadField (explicit): %v", err)
	}

	if diff := cmp.Diff(implicit, explicit, denseComparer); diff != "" {
		t.Errorf("explicit options changed the result (-implicit +explicit):\n%s", diff)
	}
}

func TestLoadFieldPartialShapeTriggersFullReparse(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	testutil.WriteVec(t, fsys, "run.vec", testutil.VecFile(3, 2, 2000.0, 0))

	// Rows without Cols is not a valid override; the header parse
	// replaces the supplied variables as well.
	frame, err := LoadField(fsys, "run.vec", LoadOptions{
		Rows:      99,
		Variables: []string{"bogus"},
	})
	if err != nil {
		t.Fatalf("LoadField: %v", err)
	}

	if frame.Attrs == nil {
		t.Fatal("Attrs = nil, want metadata")
	}
	if frame.Attrs.Variables[0] != "X" {
		t.Errorf("Variables[0] = %q, want header value X", frame.Attrs.Variables[0])
	}
	if rows, _ := frame.Dims(); rows != 3 {
		t.Errorf("rows = %d, want header value 3", rows)
	}
}

func TestLoadFieldMetadataCondition(t *testing.T) {
	testCases := []struct {
		name      string
		variables []string
		units     []string
		wantAttrs bool
	}{
		{"variables_and_units", []string{"X"}, []string{"mm"}, true},
		{"neither", nil, nil, true},
		{"variables_only", []string{"X"}, nil, true},
		// The single skipped case: units supplied without variables.
		{"units_only", nil, []string{"mm"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fsutil.NewMemoryFileSystem()
			testutil.WriteVec(t, fsys, "run.vec", testutil.VecFile(3, 2, 2000.0, 0))

			frame, err := LoadField(fsys, "run.vec", LoadOptions{
				Rows:      3,
				Cols:      2,
				Variables: tc.variables,
				Units:     tc.units,
				DeltaT:    floatPtr(1.0),
			})
			if err != nil {
				t.Fatalf("LoadField: %v", err)
			}

			if got := frame.Attrs != nil; got != tc.wantAttrs {
				t.Errorf("attrs attached = %v, want %v", got, tc.wantAttrs)
			}
		})
	}
}

func TestLoadFieldExplicitDeltaTSkipsHeaderExtraction(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	// Header carries no MicrosecondsPerDeltaT; an explicit value must
	// keep the load from touching the extractor.
	header := `TITLE="t" VARIABLES="X mm", "Y mm", "U m/s", "V m/s", "CHC", ZONE I=2, J=2, F=POINT`
	testutil.WriteVec(t, fsys, "run.vec", header+"\n"+testutil.VecBody(2, 2, 0))

	frame, err := LoadField(fsys, "run.vec", LoadOptions{DeltaT: floatPtr(42.0)})
	if err != nil {
		t.Fatalf("LoadField: %v", err)
	}
	if frame.Attrs == nil || frame.Attrs.DeltaT != 42.0 {
		t.Errorf("Attrs = %+v, want DeltaT 42.0", frame.Attrs)
	}

	// Without the override the missing marker is fatal.
	_, err = LoadField(fsys, "run.vec", LoadOptions{})
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("LoadField without dt = %v, want *ParseError", err)
	}
}

func TestLoadFieldRowCountMismatch(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	// Header claims 3x2 but body has only 4 rows.
	testutil.WriteVec(t, fsys, "run.vec", testutil.VecHeader(3, 2, 2000.0)+"\n"+testutil.VecBody(2, 2, 0))

	_, err := LoadField(fsys, "run.vec", LoadOptions{})
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("LoadField = %v, want *ParseError", err)
	}
}

func TestLoadFieldMalformedBody(t *testing.T) {
	testCases := []struct {
		name string
		row  string
	}{
		{"too_few_fields", "1.0, 2.0, 3.0"},
		{"non_numeric", "1.0, 2.0, x, 4.0, 5.0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fsutil.NewMemoryFileSystem()
			testutil.WriteVec(t, fsys, "run.vec", testutil.VecHeader(1, 1, 2000.0)+"\n"+tc.row+"\n")

			_, err := LoadField(fsys, "run.vec", LoadOptions{})
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Errorf("LoadField = %v, want *ParseError", err)
			}
		})
	}
}

func TestLoadFieldExtraTrailingFieldsIgnored(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()
	testutil.WriteVec(t, fsys, "run.vec",
		testutil.VecHeader(1, 1, 2000.0)+"\n5.0, 6.0, 7.0, 8.0, 1.0, 99.0, 98.0\n")

	frame, err := LoadField(fsys, "run.vec", LoadOptions{})
	if err != nil {
		t.Fatalf("LoadField: %v", err)
	}
	if got := frame.U.At(0, 0); got != 7.0 {
		t.Errorf("u = %f, want 7.0", got)
	}
}

func TestLoadFieldColumnMajor(t *testing.T) {
	fsys := fsutil.NewMemoryFileSystem()

	// 2x3 grid written column by column: (0,0) (1,0) (0,1) (1,1) (0,2) (1,2).
	body := ""
	for j := 0; j < 3; j++ {
		for i := 0; i < 2; i++ {
			body += fmt.Sprintf("%d.0, %d.0, %d.0, 0.0, 1.0\n", j, i, i*3+j)
		}
	}
	testutil.WriteVec(t, fsys, "run.vec", testutil.VecHeader(2, 3, 2000.0)+"\n"+body)

	frame, err := LoadField(fsys, "run.vec", LoadOptions{Order: ColumnMajor})
	if err != nil {
		t.Fatalf("LoadField: %v", err)
	}

	if diff := cmp.Diff([]float64{0, 1, 2}, frame.X); diff != "" {
		t.Errorf("x axis mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 1}, frame.Y); diff != "" {
		t.Errorf("y axis mismatch (-want +got):\n%s", diff)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if got := frame.U.At(i, j); got != float64(i*3+j) {
				t.Errorf("u(%d,%d) = %f, want %d", i, j, got, i*3+j)
			}
		}
	}
}
