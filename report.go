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

import "fmt"

// Assembler turns scan results into ledger entries.
type Assembler struct {
	Ledger   *Ledger
	Mapper   *CoordinateMapper
	Settings Settings
}

// Report adds the entries for r, which was scanned against
// [min, max]. Counts are always reported; the extreme values are listed
// only if a.Settings.Itemize() is true. Skipped missing values are
// counted last.
func (a Assembler) Report(r *ScanResult, min, max float64) {
	if r.Clean() {
		a.Ledger.Info("Values are within valid range (%.2E to %.2E).", min, max)
	}
	if r.LowCount > 0 {
		a.Ledger.Error("%d values are lower than the valid minimum (%.2E).", r.LowCount, min)
		a.itemize(r, r.Lowest, "%d lowest values are :")
	}
	if r.HighCount > 0 {
		a.Ledger.Error("%d values are higher than the valid maximum (%.2E).", r.HighCount, max)
		a.itemize(r, r.Highest, "%d highest values are :")
	}
	if r.Masked > 0 {
		a.Ledger.Info("%d values are missing and were not checked.", r.Masked)
	}
}

func (a Assembler) itemize(r *ScanResult, vs []Violation, header string) {
	if !a.Settings.Itemize() || a.Mapper == nil || len(vs) == 0 {
		return
	}
	if len(vs) > a.Settings.MinMax {
		vs = vs[:a.Settings.MinMax]
	}
	a.Ledger.Info(header, len(vs))
	var skipped int
	var reason error
	for _, v := range vs {
		co, err := a.Mapper.Map(r.Tuple(v.Index))
		if err != nil {
			skipped++
			if reason == nil {
				reason = err
			}
		}
		a.Ledger.Info("%s", formatExtreme(co, v.Value))
	}
	if skipped > 0 {
		a.Ledger.Info("Time could not be decoded for %d listed values (%v).", skipped, reason)
	}
}

// formatExtreme formats one listed value, e.g.
// "date: 1661-01-01 00:00:00, lat/lon: 89.75/-179.75, value: 1.000000E+03".
func formatExtreme(co Coordinate, value float64) string {
	var s string
	if co.HasTime {
		s = fmt.Sprintf("date: %s, ", co.Time)
	}
	s += fmt.Sprintf("lat/lon: %4.2f/%4.2f, ", co.Lat, co.Lon)
	if co.HasDepth {
		s += fmt.Sprintf("depth: %d, ", co.Depth)
	}
	return s + fmt.Sprintf("value: %E", value)
}
