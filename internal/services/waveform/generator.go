// Package waveform computes the steady-state inductor current and output
// voltage ripple of an ideal buck converter over one switching period.
package waveform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// SampleCount is the number of points in every returned sequence.
const SampleCount = 1000

// Result is one switching period sampled at SampleCount points.
// Index k of each slice belongs to the same instant.
type Result struct {
	Time    []float64 `json:"time"`    // ms
	Voltage []float64 `json:"voltage"` // V
	Current []float64 `json:"current"` // A
}

// Simulate validates p and, if it is acceptable, generates its waveform.
// No numeric work is done for invalid parameters. A waveform holding NaN
// or ±Inf is reported as ErrNonFinite.
func Simulate(p Parameters) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	r := Generate(p)
	if err := r.checkFinite(); err != nil {
		return Result{}, err
	}
	return r, nil
}

func (r Result) checkFinite() error {
	for _, s := range []struct {
		name   string
		values []float64
	}{
		{"time", r.Time},
		{"voltage", r.Voltage},
		{"current", r.Current},
	} {
		if floats.HasNaN(s.values) || math.IsInf(floats.Max(s.values), 1) || math.IsInf(floats.Min(s.values), -1) {
			return fmt.Errorf("%w: %s overflows", ErrNonFinite, s.name)
		}
	}
	return nil
}

// Generate samples one period of steady-state operation. p must already
// have passed Validate.
//
// The inductor current is a triangle centred on Iout, rising while the
// switch is closed and falling while it is open. The output voltage is
// Vout plus a sinusoid of amplitude ΔIL/(8·C·f), the small-ripple
// textbook approximation; its phase is not tied to the current ripple.
func Generate(p Parameters) Result {
	op := p.OperatingPoint()
	vin := p.InputVoltage

	t := make([]float64, SampleCount)
	floats.Span(t, 0, op.Period*1e3)
	// pin the endpoint so the grid spans exactly [0, T]
	t[SampleCount-1] = op.Period * 1e3

	voltage := make([]float64, SampleCount)
	current := make([]float64, SampleCount)

	for i, ms := range t {
		s := ms * 1e-3
		tau := math.Mod(s, op.Period)
		if tau < op.OnTime {
			current[i] = op.OutputCurrent - op.RippleCurrent/2 + (vin-op.OutputVoltage)*tau/op.Inductance
		} else {
			current[i] = op.OutputCurrent + op.RippleCurrent/2 - op.OutputVoltage*(tau-op.OnTime)/op.Inductance
		}

		arg := 2 * math.Pi * op.Frequency * ms * 1e-3
		// The conversion stops the product being fused into a
		// multiply-add, which would round differently on arm64.
		voltage[i] = op.OutputVoltage + float64(op.RippleVoltage*math.Sin(arg))
	}

	return Result{Time: t, Voltage: voltage, Current: current}
}
