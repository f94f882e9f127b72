package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/terminal-bench/buckwave/internal/services/waveform"
)

// ErrMalformedRequest is returned when a request cannot be turned into
// six numeric circuit parameters.
var ErrMalformedRequest = errors.New("malformed request")

// Number is a float64 that accepts a JSON number, a numeric JSON string
// ("12", " 0.5 ", "1e3") or a boolean (true is 1, false is 0).
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("%w: empty value", ErrMalformedRequest)
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
		v, err := ParseNumber(s)
		if err != nil {
			return err
		}
		*n = v
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
		*n = Number(f)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedRequest, err)
		}
		*n = 0
		if b {
			*n = 1
		}
		return nil
	default:
		return fmt.Errorf("%w: could not convert %s to float", ErrMalformedRequest, data)
	}
}

// ParseNumber parses a numeric string the way form and query values are
// accepted: surrounding whitespace is ignored.
func ParseNumber(s string) (Number, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: could not convert string to float: %q", ErrMalformedRequest, s)
	}
	return Number(f), nil
}

// SimulateRequest is the body accepted by every simulation endpoint.
// Units: V, fraction, µH, µF, Ω, kHz.
type SimulateRequest struct {
	Vin         *Number `json:"vin"`
	DutyCycle   *Number `json:"dutyCycle"`
	Inductance  *Number `json:"inductance"`
	Capacitance *Number `json:"capacitance"`
	Resistance  *Number `json:"resistance"`
	Frequency   *Number `json:"frequency"`
}

// Parameters converts the request into waveform parameters. A missing
// or null field is reported as ErrMalformedRequest; range checks are left
// to waveform.Parameters.Validate.
func (r *SimulateRequest) Parameters() (waveform.Parameters, error) {
	fields := []struct {
		name  string
		value *Number
	}{
		{"vin", r.Vin},
		{"dutyCycle", r.DutyCycle},
		{"inductance", r.Inductance},
		{"capacitance", r.Capacitance},
		{"resistance", r.Resistance},
		{"frequency", r.Frequency},
	}
	for _, f := range fields {
		if f.value == nil {
			return waveform.Parameters{}, fmt.Errorf("%w: missing field %q", ErrMalformedRequest, f.name)
		}
	}

	return waveform.Parameters{
		InputVoltage:          float64(*r.Vin),
		DutyCycle:             float64(*r.DutyCycle),
		InductanceMicrohenry:  float64(*r.Inductance),
		CapacitanceMicrofarad: float64(*r.Capacitance),
		LoadResistanceOhm:     float64(*r.Resistance),
		SwitchingFrequencyKHz: float64(*r.Frequency),
	}, nil
}

// RequestFromValues builds a SimulateRequest from string values such as a
// URL query. Absent keys stay nil.
func RequestFromValues(get func(key string) (string, bool)) (*SimulateRequest, error) {
	req := &SimulateRequest{}
	targets := []struct {
		key string
		dst **Number
	}{
		{"vin", &req.Vin},
		{"dutyCycle", &req.DutyCycle},
		{"inductance", &req.Inductance},
		{"capacitance", &req.Capacitance},
		{"resistance", &req.Resistance},
		{"frequency", &req.Frequency},
	}
	for _, t := range targets {
		raw, ok := get(t.key)
		if !ok {
			continue
		}
		v, err := ParseNumber(raw)
		if err != nil {
			return nil, err
		}
		*t.dst = &v
	}
	return req, nil
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
