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

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/maps"
)

// ErrUnknownSite is returned for a volcano missing from the site registry.
var ErrUnknownSite = errors.New("unknown volcano")

// Site describes the vent of a volcano.
type Site struct {
	Name      string
	Elevation float64 // vent height above sea level in m
	Latitude  float64
	Longitude float64
}

var sites = map[string]Site{
	"etna":     {Name: "Etna", Elevation: 3350, Latitude: 37.75, Longitude: 15.0},
	"vesuvius": {Name: "Vesuvius", Elevation: 1281, Latitude: 40.822, Longitude: 14.426},
}

// LookupSite finds a site by its case-insensitive name.
func LookupSite(name string) (Site, error) {
	site, found := sites[strings.ToLower(strings.TrimSpace(name))]
	if !found {
		return Site{}, errors.Wrapf(ErrUnknownSite, "%q is not one of %v", name, strings.Join(SiteNames(), ", "))
	}
	return site, nil
}

// SiteNames lists the registered sites in alphabetical order.
func SiteNames() []string {
	names := make([]string, 0, len(sites))
	for _, key := range sortedKeys(sites) {
		names = append(names, sites[key].Name)
	}
	return names
}

func sortedKeys(m map[string]Site) []string {
	keys := maps.Keys(m)
	sort.Strings(keys)
	return keys
}
