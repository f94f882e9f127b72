package waveform

import (
	"errors"
	"math"
)

// Parameters describes one buck converter operating condition in the
// units users enter them in.
type Parameters struct {
	InputVoltage          float64 // V
	DutyCycle             float64 // 0..1
	InductanceMicrohenry  float64 // µH
	CapacitanceMicrofarad float64 // µF
	LoadResistanceOhm     float64 // Ω
	SwitchingFrequencyKHz float64 // kHz
}

// Validate checks every field against its bounds and reports all
// violations. The returned error wraps ErrInvalidParameter.
func (p Parameters) Validate() error {
	var errs []error

	positive := []struct {
		field string
		value float64
	}{
		{"vin", p.InputVoltage},
		{"inductance", p.InductanceMicrohenry},
		{"capacitance", p.CapacitanceMicrofarad},
		{"resistance", p.LoadResistanceOhm},
		{"frequency", p.SwitchingFrequencyKHz},
	}
	for _, f := range positive {
		if !isFinite(f.value) {
			errs = append(errs, &ParameterError{Field: f.field, Value: f.value, Rule: "finite"})
			continue
		}
		if f.value <= 0 {
			errs = append(errs, &ParameterError{Field: f.field, Value: f.value, Rule: "> 0"})
		}
	}

	// NaN fails both comparisons, so the range check also rejects it.
	if !(p.DutyCycle >= 0 && p.DutyCycle <= 1) {
		errs = append(errs, &ParameterError{Field: "dutyCycle", Value: p.DutyCycle, Rule: "within [0, 1]"})
	}

	return errors.Join(errs...)
}

// OperatingPoint holds the ideal steady-state quantities derived from
// Parameters, in SI units.
type OperatingPoint struct {
	Inductance    float64 `json:"inductanceH"`
	Capacitance   float64 `json:"capacitanceF"`
	Resistance    float64 `json:"resistanceOhm"`
	Frequency     float64 `json:"frequencyHz"`
	Period        float64 `json:"periodS"`
	OnTime        float64 `json:"onTimeS"`
	OutputVoltage float64 `json:"outputVoltage"`
	OutputCurrent float64 `json:"outputCurrent"`
	RippleCurrent float64 `json:"rippleCurrent"`
	RippleVoltage float64 `json:"rippleVoltage"`
}

// OperatingPoint converts p to SI units and computes the lossless
// continuous-conduction quantities. p is assumed valid.
func (p Parameters) OperatingPoint() OperatingPoint {
	l := p.InductanceMicrohenry * 1e-6
	c := p.CapacitanceMicrofarad * 1e-6
	r := p.LoadResistanceOhm
	f := p.SwitchingFrequencyKHz * 1e3
	period := 1 / f

	vout := p.InputVoltage * p.DutyCycle
	iout := vout / r
	deltaIL := (p.InputVoltage - vout) * p.DutyCycle * period / l

	return OperatingPoint{
		Inductance:    l,
		Capacitance:   c,
		Resistance:    r,
		Frequency:     f,
		Period:        period,
		OnTime:        p.DutyCycle * period,
		OutputVoltage: vout,
		OutputCurrent: iout,
		RippleCurrent: deltaIL,
		RippleVoltage: deltaIL / (8 * c * f),
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
