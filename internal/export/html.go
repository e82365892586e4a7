package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/wavelab/internal/analysis"
	"github.com/san-kum/wavelab/internal/spectrum"
)

// ProfileChart builds an interactive line chart with one series per
// profile, coloured by wavelength. All profiles must share positions.
func ProfileChart(title string, profiles []analysis.Profile) (*charts.Line, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profiles to chart")
	}
	n := len(profiles[0].Y)
	for _, p := range profiles {
		if len(p.Y) != n || len(p.I) != n {
			return nil, fmt.Errorf("profile %.0f nm has %d samples, want %d", p.Wavelength*1e9, len(p.I), n)
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:     "100%",
			Height:    "600px",
			PageTitle: title,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:         opts.Bool(true),
			SelectedMode: "multiple",
			Type:         "scroll",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "y, mm",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "I/I0",
			Type: "value",
			Min:  0,
			Max:  1,
		}),
	)

	x := make([]string, n)
	for i, y := range profiles[0].Y {
		x[i] = fmt.Sprintf("%.3f", y*1e3)
	}
	line.SetXAxis(x)

	for _, p := range profiles {
		data := make([]opts.LineData, n)
		for i, v := range p.I {
			data[i] = opts.LineData{Value: v}
		}
		nm := p.Wavelength * 1e9
		line.AddSeries(fmt.Sprintf("%.0f nm", nm), data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: seriesColor(nm)}),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		)
	}
	return line, nil
}

// WriteHTML renders the profiles as a standalone HTML page.
func WriteHTML(w io.Writer, title string, profiles []analysis.Profile) error {
	line, err := ProfileChart(title, profiles)
	if err != nil {
		return err
	}
	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// seriesColor is the spectral colour, grey outside the visible range.
func seriesColor(nm float64) string {
	if !spectrum.Visible(nm) {
		return "#888888"
	}
	return spectrum.Hex(spectrum.RGB(nm))
}
