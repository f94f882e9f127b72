// Package export renders a generated waveform as a downloadable table.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/terminal-bench/buckwave/internal/services/waveform"
	"github.com/xuri/excelize/v2"
)

// Format names an export encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ErrUnsupportedFormat is returned by ParseFormat for unknown names.
var ErrUnsupportedFormat = errors.New("unsupported export format")

const (
	sheetWaveform   = "Waveform"
	sheetParameters = "Parameters"
)

var columnHeaders = []string{"time [ms]", "voltage [V]", "current [A]"}

// ParseFormat maps a query value to a Format; empty selects XLSX.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Filename returns the attachment name for f.
func (f Format) Filename() string {
	return "buck-waveform." + string(f)
}

// Write encodes r in format f.
func Write(w io.Writer, f Format, p waveform.Parameters, r waveform.Result) error {
	switch f {
	case FormatXLSX:
		return WriteXLSX(w, p, r)
	case FormatCSV:
		return WriteCSV(w, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}

// WriteCSV writes a header row and one row per sample.
func WriteCSV(w io.Writer, r waveform.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columnHeaders); err != nil {
		return err
	}

	row := make([]string, 3)
	for i := range r.Time {
		row[0] = formatFloat(r.Time[i])
		row[1] = formatFloat(r.Voltage[i])
		row[2] = formatFloat(r.Current[i])
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with the samples on one sheet and the
// inputs and operating point on another. Values keep their full
// precision; only the header labels carry units.
func WriteXLSX(w io.Writer, p waveform.Parameters, r waveform.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetWaveform); err != nil {
		return err
	}

	header := make([]interface{}, len(columnHeaders))
	for i, h := range columnHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetWaveform, "A1", &header); err != nil {
		return err
	}

	for i := range r.Time {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Time[i], r.Voltage[i], r.Current[i]}
		if err := f.SetSheetRow(sheetWaveform, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetParameters); err != nil {
		return err
	}
	op := p.OperatingPoint()
	rows := [][]interface{}{
		{"vin [V]", p.InputVoltage},
		{"dutyCycle", p.DutyCycle},
		{"inductance [µH]", p.InductanceMicrohenry},
		{"capacitance [µF]", p.CapacitanceMicrofarad},
		{"resistance [Ω]", p.LoadResistanceOhm},
		{"frequency [kHz]", p.SwitchingFrequencyKHz},
		{"period [s]", op.Period},
		{"Vout [V]", op.OutputVoltage},
		{"Iout [A]", op.OutputCurrent},
		{"ΔIL [A]", op.RippleCurrent},
		{"ΔV [V]", op.RippleVoltage},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(sheetParameters, cell, &row); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
