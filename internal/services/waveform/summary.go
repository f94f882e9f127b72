package waveform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Extent describes the spread of one sampled sequence.
type Extent struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Mean       float64 `json:"mean"`
	PeakToPeak float64 `json:"peakToPeak"`
}

// Summary is the operating point together with the measured extent of
// the generated sequences.
type Summary struct {
	OperatingPoint
	Samples int    `json:"samples"`
	Voltage Extent `json:"voltage"`
	Current Extent `json:"current"`
}

// Summarize measures r. op must be the operating point r was generated from.
func Summarize(op OperatingPoint, r Result) Summary {
	return Summary{
		OperatingPoint: op,
		Samples:        len(r.Time),
		Voltage:        extentOf(r.Voltage),
		Current:        extentOf(r.Current),
	}
}

// CheckFinite reports ErrNonFinite if any derived quantity overflowed,
// which can happen even when the sampled sequences are finite.
func (s Summary) CheckFinite() error {
	op := s.OperatingPoint
	values := []float64{
		op.Inductance, op.Capacitance, op.Resistance, op.Frequency, op.Period,
		op.OnTime, op.OutputVoltage, op.OutputCurrent, op.RippleCurrent, op.RippleVoltage,
		s.Voltage.Min, s.Voltage.Max, s.Voltage.Mean, s.Voltage.PeakToPeak,
		s.Current.Min, s.Current.Max, s.Current.Mean, s.Current.PeakToPeak,
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: summary overflows", ErrNonFinite)
		}
	}
	return nil
}

func extentOf(xs []float64) Extent {
	if len(xs) == 0 {
		return Extent{}
	}
	lo, hi := floats.Min(xs), floats.Max(xs)
	return Extent{
		Min:        lo,
		Max:        hi,
		Mean:       floats.Sum(xs) / float64(len(xs)),
		PeakToPeak: hi - lo,
	}
}
