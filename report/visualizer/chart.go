// Copyright 2025 Sonic Labs
// This file is part of Tephra, a Monte Carlo driver for volcanic plume models
//
// Tephra is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tephra is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Tephra. If not, see <http://www.gnu.org/licenses/>.

// Package visualizer renders the report of all events as an HTML chart page.
package visualizer

import (
	"io"
	"os"
	"path/filepath"

	"github.com/0xsoniclabs/tephra/report"
	"github.com/cockroachdb/errors"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// ErrNoEntries is returned when there is nothing to plot.
var ErrNoEntries = errors.New("no ensembles to plot")

const pageTitle = "Monte Carlo Column Heights"

// RenderFile writes the chart page of the entries into path, creating its directory.
func RenderFile(path string, entries []report.Entry, threshold float64) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "cannot create chart directory")
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create chart %v", path)
	}
	if err := Render(file, entries, threshold); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// Render writes a page with all report charts; entries are expected in MER order.
func Render(w io.Writer, entries []report.Entry, threshold float64) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}
	low, high := report.SplitByMER(entries, threshold)

	page := components.NewPage()
	page.PageTitle = pageTitle
	page.AddCharts(
		newHeightChart(entries),
		newPercentileChart(entries),
		newMERChart(entries),
		newQQChart(report.QQ(low), report.QQ(high)),
		newPercentileMERChart(entries),
		newCurveChart(entries),
	)
	return page.Render(w)
}

// globalOptions returns the options shared by every chart of the page.
func globalOptions(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:     types.ThemeChalk,
			PageTitle: pageTitle,
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
	}
}

func labels(entries []report.Entry) []string {
	res := make([]string, len(entries))
	for i, e := range entries {
		res[i] = e.Label()
	}
	return res
}

// newHeightChart shows the box of every ensemble with the radar height on top.
func newHeightChart(entries []report.Entry) *charts.BoxPlot {
	boxes := make([]opts.BoxPlotData, len(entries))
	radar := make([]opts.ScatterData, len(entries))
	for i, e := range entries {
		boxes[i] = opts.BoxPlotData{Name: e.Label(), Value: e.Box.Values()}
		radar[i] = opts.ScatterData{Name: e.Label(), Value: e.Event.ObservedHeight, SymbolSize: 10}
	}

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(append(globalOptions("Simulated and observed column heights"),
		charts.WithXAxisOpts(opts.XAxis{Name: "Event", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Height (m a.s.l.)", Type: "value", Scale: true}),
	)...)
	box.SetXAxis(labels(entries)).AddSeries("Simulated", boxes)

	scatter := charts.NewScatter()
	scatter.SetXAxis(labels(entries)).AddSeries("Radar", radar)
	box.Overlap(scatter)
	return box
}

// newPercentileChart shows the ECDF percentile of every observation with its uncertainty band.
func newPercentileChart(entries []report.Entry) *charts.Line {
	var lows, mids, highs []opts.LineData
	for _, e := range entries {
		lows = append(lows, opts.LineData{Value: e.Percentile.Low})
		mids = append(mids, opts.LineData{Value: e.Percentile.Mid})
		highs = append(highs, opts.LineData{Value: e.Percentile.High})
	}
	line := charts.NewLine()
	line.SetGlobalOptions(append(globalOptions("ECDF percentile of the radar height"),
		charts.WithXAxisOpts(opts.XAxis{Name: "Event", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Percentile", Type: "value", Min: 0, Max: 1}),
	)...)
	line.SetXAxis(labels(entries)).
		AddSeries("Radar - uncertainty", lows).
		AddSeries("Radar", mids).
		AddSeries("Radar + uncertainty", highs)
	return line
}

// newMERChart shows the mass eruption rate of every event.
func newMERChart(entries []report.Entry) *charts.Bar {
	bars := make([]opts.BarData, len(entries))
	for i, e := range entries {
		bars[i] = opts.BarData{Name: e.Label(), Value: e.Event.MER}
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(globalOptions("Mass eruption rate"),
		charts.WithXAxisOpts(opts.XAxis{Name: "Event", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "MER (kg/s)", Type: "log", Min: 1e4, Max: 1e7}),
	)...)
	bar.SetXAxis(labels(entries)).AddSeries("MER", bars)
	return bar
}

func qqData(points []report.QQPoint) []opts.ScatterData {
	items := make([]opts.ScatterData, len(points))
	for i, p := range points {
		items[i] = opts.ScatterData{Name: p.Label, Value: [2]float64{p.Theoretical, p.Percentile.Mid}, SymbolSize: 8}
	}
	return items
}

// newQQChart compares the percentiles of both MER groups with a uniform distribution.
func newQQChart(low, high []report.QQPoint) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(append(globalOptions("Q-Q plot of the radar percentiles"),
		charts.WithXAxisOpts(opts.XAxis{Name: "Uniform quantile", Type: "value", Min: 0, Max: 1}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ECDF percentile", Type: "value", Min: 0, Max: 1}),
	)...)
	scatter.AddSeries("Low MER", qqData(low)).AddSeries("High MER", qqData(high))

	diagonal := charts.NewLine()
	diagonal.AddSeries("1:1", []opts.LineData{{Value: [2]float64{0, 0}}, {Value: [2]float64{1, 1}}})
	scatter.Overlap(diagonal)
	return scatter
}

// newPercentileMERChart shows how the percentile depends on the eruption rate.
func newPercentileMERChart(entries []report.Entry) *charts.Scatter {
	items := make([]opts.ScatterData, len(entries))
	for i, e := range entries {
		items[i] = opts.ScatterData{Name: e.Label(), Value: [2]float64{e.Event.MER, e.Percentile.Mid}, SymbolSize: 8}
	}
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(append(globalOptions("Radar percentile versus MER"),
		charts.WithXAxisOpts(opts.XAxis{Name: "MER (kg/s)", Type: "log"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ECDF percentile", Type: "value", Min: 0, Max: 1}),
	)...)
	scatter.AddSeries("Events", items)
	return scatter
}

// newCurveChart draws the compressed ECDF of every ensemble.
func newCurveChart(entries []report.Entry) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(globalOptions("Empirical distribution of the simulated heights"),
		charts.WithXAxisOpts(opts.XAxis{Name: "Height (m a.s.l.)", Type: "value", Scale: true}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ECDF", Type: "value", Min: 0, Max: 1}),
	)...)
	for _, e := range entries {
		items := make([]opts.LineData, len(e.Curve))
		for i, pair := range e.Curve {
			items[i] = opts.LineData{Value: pair}
		}
		line.AddSeries(e.Label(), items)
	}
	return line
}
