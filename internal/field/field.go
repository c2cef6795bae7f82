// Package field holds the in-memory representation of PIV vector fields:
// a single snapshot (Frame) and a time-ordered stack of snapshots
// (Sequence), each carrying labeled coordinate axes and unit metadata.
package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Attrs is the metadata block attached to a loaded field: the variable
// names and unit strings recovered from the file header, and the
// inter-frame interval in microseconds.
type Attrs struct {
	Variables []string
	Units     []string
	DeltaT    float64
}

// Frame is one vector-field snapshot on a rectangular grid.
//
// U, V and Cnc are (rows x cols) matrices; element (i, j) sits at the
// physical position (X[j], Y[i]). X has length cols, Y has length rows.
// Attrs is nil when the loader did not attach metadata.
type Frame struct {
	X, Y []float64
	U    *mat.Dense
	V    *mat.Dense
	Cnc  *mat.Dense

	Attrs *Attrs
}

// Dims returns the grid shape as (rows, cols).
func (f *Frame) Dims() (rows, cols int) {
	return f.U.Dims()
}

// Speed returns the velocity magnitude at grid position (i, j).
func (f *Frame) Speed(i, j int) float64 {
	return math.Hypot(f.U.At(i, j), f.V.At(i, j))
}

// Sequence is a stack of frames along a new leading time axis, in load
// order. Variables and Units are shared across all frames, taken from
// the first file's header.
type Sequence struct {
	Frames    []*Frame
	Variables []string
	Units     []string
}

// Concat stacks frames into a Sequence, preserving their order as the
// time axis. Returns an error when frames is empty or the grid shapes
// disagree.
func Concat(frames []*Frame) (*Sequence, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("cannot concatenate zero frames")
	}

	r0, c0 := frames[0].Dims()
	for i, f := range frames[1:] {
		r, c := f.Dims()
		if r != r0 || c != c0 {
			return nil, fmt.Errorf("frame %d has shape (%d, %d), want (%d, %d)", i+1, r, c, r0, c0)
		}
	}

	return &Sequence{Frames: frames}, nil
}

// Len returns the length of the time axis.
func (s *Sequence) Len() int {
	return len(s.Frames)
}
