package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terminal-bench/buckwave/internal/services/waveform"
	"github.com/xuri/excelize/v2"
)

func sample() (waveform.Parameters, waveform.Result) {
	p := waveform.Parameters{
		InputVoltage:          12,
		DutyCycle:             0.5,
		InductanceMicrohenry:  100,
		CapacitanceMicrofarad: 220,
		LoadResistanceOhm:     5,
		SwitchingFrequencyKHz: 100,
	}
	return p, waveform.Generate(p)
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatXLSX, "xlsx": FormatXLSX, "XLSX": FormatXLSX, " csv ": FormatCSV}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, "buck-waveform.csv", FormatCSV.Filename())
	assert.Equal(t, "buck-waveform.xlsx", FormatXLSX.Filename())
	assert.Contains(t, FormatCSV.ContentType(), "text/csv")
	assert.Contains(t, FormatXLSX.ContentType(), "spreadsheetml")
}

func TestWriteCSV(t *testing.T) {
	_, r := sample()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, r))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, waveform.SampleCount+1)
	assert.Equal(t, columnHeaders, records[0])

	for _, k := range []int{0, 1, 499, waveform.SampleCount - 1} {
		row := records[k+1]
		for col, want := range []float64{r.Time[k], r.Voltage[k], r.Current[k]} {
			got, err := strconv.ParseFloat(row[col], 64)
			require.NoError(t, err)
			assert.Equal(t, want, got, "row %d col %d", k, col)
		}
	}
}

func TestWriteXLSX(t *testing.T) {
	p, r := sample()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, p, r))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetWaveform, sheetParameters}, f.GetSheetList())

	header, err := f.GetCellValue(sheetWaveform, "B1")
	require.NoError(t, err)
	assert.Equal(t, "voltage [V]", header)

	rows, err := f.GetRows(sheetWaveform)
	require.NoError(t, err)
	assert.Len(t, rows, waveform.SampleCount+1)

	raw, err := f.GetCellValue(sheetWaveform, "C2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	current, err := strconv.ParseFloat(raw, 64)
	require.NoError(t, err)
	assert.Equal(t, r.Current[0], current)

	raw, err = f.GetCellValue(sheetParameters, "B8", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "6", raw)
}

func TestWriteUnsupported(t *testing.T) {
	p, r := sample()
	err := Write(&bytes.Buffer{}, Format("pdf"), p, r)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
