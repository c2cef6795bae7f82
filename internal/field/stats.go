package field

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Stats summarises the velocity magnitudes of one frame.
type Stats struct {
	MeanSpeed float64
	RMSSpeed  float64
	MaxSpeed  float64
}

// SpeedStats computes mean, RMS and maximum velocity magnitude over the
// whole grid. NaN samples (masked vectors) are excluded; an all-NaN frame
// yields NaN statistics.
func (f *Frame) SpeedStats() Stats {
	rows, cols := f.Dims()

	speeds := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			s := f.Speed(i, j)
			if math.IsNaN(s) {
				continue
			}
			speeds = append(speeds, s)
		}
	}

	if len(speeds) == 0 {
		return Stats{MeanSpeed: math.NaN(), RMSSpeed: math.NaN(), MaxSpeed: math.NaN()}
	}

	var sumSq, maxSpeed float64
	for _, s := range speeds {
		sumSq += s * s
		if s > maxSpeed {
			maxSpeed = s
		}
	}

	return Stats{
		MeanSpeed: stat.Mean(speeds, nil),
		RMSSpeed:  math.Sqrt(sumSq / float64(len(speeds))),
		MaxSpeed:  maxSpeed,
	}
}

// FrameStats computes per-frame speed statistics across the sequence,
// in time order.
func (s *Sequence) FrameStats() []Stats {
	out := make([]Stats, len(s.Frames))
	for i, f := range s.Frames {
		out[i] = f.SpeedStats()
	}
	return out
}

// MeanSpeed averages the per-frame mean speeds over the time axis.
func (s *Sequence) MeanSpeed() float64 {
	if len(s.Frames) == 0 {
		return math.NaN()
	}
	means := make([]float64, len(s.Frames))
	for i, f := range s.Frames {
		means[i] = f.SpeedStats().MeanSpeed
	}
	return stat.Mean(means, nil)
}
