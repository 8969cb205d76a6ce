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

package config

import "path/filepath"

const (
	DefaultConfigFile = "config.yaml"
	DefaultChartFile  = "montecarlo.html"

	eventsFileName     = "list_eruptions.txt"
	inputTemplateName  = "template_fplume.inp"
	sizeTemplateName   = "template_fplume.tgsd"
	defaultSimulatorIn = "fplume-1.3/src"
)

// Layout locates the data files of a project below its root directory.
//
//	<root>/data/raw/list_eruptions.txt
//	<root>/data/interim/{met_files,tmp_montecarlo,templates}
//	<root>/data/processed/column_files
//	<root>/data/external/ERA5
//	<root>/plots
type Layout struct {
	Root string
}

func NewLayout(root string) Layout {
	return Layout{Root: root}
}

func (l Layout) dataDir(parts ...string) string {
	return filepath.Join(append([]string{l.Root, "data"}, parts...)...)
}

// EventsFile is the tab separated event list.
func (l Layout) EventsFile() string {
	return l.dataDir("raw", eventsFileName)
}

// MetDir holds the atmospheric profiles <ID>.met.
func (l Layout) MetDir() string {
	return l.dataDir("interim", "met_files")
}

// MetFile returns the atmospheric profile of an event.
func (l Layout) MetFile(id string) string {
	return filepath.Join(l.MetDir(), id+".met")
}

// StagingDir holds the prepared inputs and the column files being collected.
func (l Layout) StagingDir() string {
	return l.dataDir("interim", "tmp_montecarlo")
}

func (l Layout) TemplatesDir() string {
	return l.dataDir("interim", "templates")
}

// InputTemplate is the text/template rendered into <ID>.inp for every trial.
func (l Layout) InputTemplate() string {
	return filepath.Join(l.TemplatesDir(), inputTemplateName)
}

// SizeDistributionTemplate is copied verbatim to <ID>.tgsd.
func (l Layout) SizeDistributionTemplate() string {
	return filepath.Join(l.TemplatesDir(), sizeTemplateName)
}

// ColumnDir receives the published ensembles <ID>.column.
func (l Layout) ColumnDir() string {
	return l.dataDir("processed", "column_files")
}

// ExtractDir holds the pressure level extracts <ID>_pressure_levels.json.
func (l Layout) ExtractDir() string {
	return l.dataDir("external", "ERA5")
}

// ExtractFile returns the pressure level extract of an event.
func (l Layout) ExtractFile(id string) string {
	return filepath.Join(l.ExtractDir(), id+"_pressure_levels.json")
}

func (l Layout) PlotsDir() string {
	return filepath.Join(l.Root, "plots")
}

func (l Layout) DefaultSimulatorDir() string {
	return filepath.Join(l.Root, filepath.FromSlash(defaultSimulatorIn))
}
