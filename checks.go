/*
Copyright © 2026 the gridqc authors.
This file is part of gridqc.

gridqc is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

gridqc is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with gridqc.  If not, see <http://www.gnu.org/licenses/>.
*/

package gridqc

import (
	"fmt"
	"sort"
)

// Check is a named check that adds its findings to a file's ledger.
type Check struct {
	Name string
	Run  func(f *File)
}

var registry = map[string]func(*File){
	"attributes":          checkAttributes,
	"dimension_variables": checkDimensionVariables,
	"lon":                 checkLon,
	"lat":                 checkLat,
	"time":                checkTime,
	"mode":                checkMode,
	"grid_variable":       checkGridVariable,
	"variable":            checkVariable,
}

// DefaultChecks are the names of the checks run when none are
// configured, in the order they run.
var DefaultChecks = []string{
	"attributes",
	"dimension_variables",
	"lon",
	"lat",
	"time",
	"mode",
	"variable",
}

// CheckNames returns the names of all available checks, sorted.
func CheckNames() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Checks returns the named checks in the given order, or the default
// checks if no names are given.
func Checks(names ...string) ([]Check, error) {
	if len(names) == 0 {
		names = DefaultChecks
	}
	checks := make([]Check, len(names))
	for i, n := range names {
		fn, ok := registry[n]
		if !ok {
			return nil, fmt.Errorf("gridqc: unknown check %q; valid checks are %v", n, CheckNames())
		}
		checks[i] = Check{Name: n, Run: fn}
	}
	return checks, nil
}

// Run runs checks against f in order. Every check runs regardless of
// what earlier checks found.
func (f *File) Run(checks []Check) {
	for _, c := range checks {
		c.Run(f)
	}
}
