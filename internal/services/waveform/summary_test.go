package waveform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	p := referenceParameters()
	op := p.OperatingPoint()
	s := Summarize(op, Generate(p))

	assert.Equal(t, op, s.OperatingPoint)
	assert.Equal(t, SampleCount, s.Samples)

	assert.InDelta(t, 1.35, s.Current.Max, 1e-3)
	assert.InDelta(t, 1.05, s.Current.Min, 1e-3)
	assert.InDelta(t, op.RippleCurrent, s.Current.PeakToPeak, 2e-3)
	assert.InDelta(t, op.OutputCurrent, s.Current.Mean, 1e-3)

	assert.InDelta(t, 2*op.RippleVoltage, s.Voltage.PeakToPeak, 1e-6)
	assert.InDelta(t, op.OutputVoltage, s.Voltage.Mean, 1e-5)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(OperatingPoint{}, Result{})
	assert.Equal(t, 0, s.Samples)
	assert.Equal(t, Extent{}, s.Voltage)
	assert.Equal(t, Extent{}, s.Current)
}

func TestSummaryCheckFinite(t *testing.T) {
	p := referenceParameters()
	s := Summarize(p.OperatingPoint(), Generate(p))
	assert.NoError(t, s.CheckFinite())

	// samples within range whose spread does not fit in a float64
	wide := Summarize(OperatingPoint{}, Result{
		Time:    []float64{0, 1},
		Voltage: []float64{-math.MaxFloat64, math.MaxFloat64},
		Current: []float64{0, 0},
	})
	assert.ErrorIs(t, wide.CheckFinite(), ErrNonFinite)
}
