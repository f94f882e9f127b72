// Package chart renders a generated waveform as an interactive HTML page.
package chart

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/terminal-bench/buckwave/internal/services/waveform"
)

// Page holds one computed period ready for rendering.
type Page struct {
	Parameters waveform.Parameters
	Result     waveform.Result
}

// Render writes an HTML document with the output voltage and inductor
// current plotted against time.
func (p *Page) Render(w io.Writer) error {
	op := p.Parameters.OperatingPoint()

	xAxis := make([]string, len(p.Result.Time))
	for i, t := range p.Result.Time {
		xAxis[i] = strconv.FormatFloat(t, 'f', 5, 64)
	}

	voltage := newLine(
		"Output voltage",
		fmt.Sprintf("Vout = %.4g V, ΔV = %.4g V", op.OutputVoltage, op.RippleVoltage),
		"V",
	)
	voltage.SetXAxis(xAxis).AddSeries("voltage", lineData(p.Result.Voltage))

	current := newLine(
		"Inductor current",
		fmt.Sprintf("Iout = %.4g A, ΔIL = %.4g A", op.OutputCurrent, op.RippleCurrent),
		"A",
	)
	current.SetXAxis(xAxis).AddSeries("current", lineData(p.Result.Current))

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf(
		"Buck converter: %g V, D=%g, %g µH, %g µF, %g Ω, %g kHz",
		p.Parameters.InputVoltage, p.Parameters.DutyCycle,
		p.Parameters.InductanceMicrohenry, p.Parameters.CapacitanceMicrofarad,
		p.Parameters.LoadResistanceOhm, p.Parameters.SwitchingFrequencyKHz,
	)
	page.AddCharts(voltage, current)
	return page.Render(w)
}

func newLine(title, subtitle, unit string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:        "ms",
			SplitNumber: 20,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  unit,
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithAnimation(false),
	)
	return line
}

func lineData(values []float64) []opts.LineData {
	items := make([]opts.LineData, len(values))
	for i, v := range values {
		items[i] = opts.LineData{Value: v}
	}
	return items
}
