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

package report

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// tableStyle is the light style keeping the header text as written.
func tableStyle() table.Style {
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	return style
}

// PercentileTable renders the ECDF percentile of every radar observation.
func PercentileTable(entries []Entry) string {
	t := table.NewWriter()
	t.SetStyle(tableStyle())
	t.AppendHeader(table.Row{"Date", "Radar Value", "ECDF Percentile", "Range"})
	for _, e := range entries {
		p := e.Percentile
		t.AppendRow(table.Row{
			e.Event.Time().Format("2006-01-02 15:04"),
			fmt.Sprintf("%.1f", e.Event.ObservedHeight),
			fmt.Sprintf("%.1f%%", p.Mid*100),
			fmt.Sprintf("[%.1f%% - %.1f%%]", p.Low*100, p.High*100),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	return t.Render()
}

// SummaryTable renders the ensemble statistics of every event.
func SummaryTable(entries []Entry) string {
	t := table.NewWriter()
	t.SetStyle(tableStyle())
	t.AppendHeader(table.Row{"Event", "MER (kg/s)", "Trials", "Mean (m)", "Std (m)", "P1", "P25", "P50", "P75", "P99"})
	for _, e := range entries {
		b := e.Box
		t.AppendRow(table.Row{
			e.Event.ID(),
			fmt.Sprintf("%.3g", e.Event.MER),
			len(e.Heights),
			fmt.Sprintf("%.1f", e.Mean),
			fmt.Sprintf("%.1f", e.Std),
			fmt.Sprintf("%.0f", b.WhiskerLow),
			fmt.Sprintf("%.0f", b.Q1),
			fmt.Sprintf("%.0f", b.Median),
			fmt.Sprintf("%.0f", b.Q3),
			fmt.Sprintf("%.0f", b.WhiskerHigh),
		})
	}
	return t.Render()
}
