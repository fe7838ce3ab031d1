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
	"math"
)

// Scanner finds values of a variable that lie outside [Min, Max].
type Scanner struct {
	Min, Max float64

	// K is the number of most extreme violations kept per direction.
	K int
}

// ScanResult holds the outcome of a scan.
type ScanResult struct {
	// Shape is the shape of the scanned variable.
	Shape []int

	// LowCount and HighCount are the total numbers of values below Min
	// and above Max.
	LowCount, HighCount int

	// Lowest holds up to K of the smallest values, ascending.
	// Highest holds up to K of the largest values, descending.
	Lowest, Highest []Violation

	// Masked is the number of values skipped as fill values or NaN.
	Masked int
}

// Clean returns whether no value was out of range.
func (r *ScanResult) Clean() bool { return r.LowCount == 0 && r.HighCount == 0 }

// Tuple converts a flat row-major index into one index per dimension.
func (r *ScanResult) Tuple(flat int) []int { return unravel(flat, r.Shape) }

// Scan reads v once, slab by slab, and classifies every value. Values
// equal to the variable's _FillValue or missing_value and NaNs are
// skipped. scale_factor and add_offset are applied before comparison.
// The bounds of an unpacked float32 variable are rounded to float32.
func (s Scanner) Scan(v Variable) (*ScanResult, error) {
	m := newMask(v)
	scale, offset := packing(v)
	low := NewExtremes(TooLow, s.K)
	high := NewExtremes(TooHigh, s.K)
	r := &ScanResult{Shape: append([]int(nil), v.Shape()...)}

	min, max := s.Min, s.Max
	if v.DType() == "float32" && scale == 1 && offset == 0 {
		// Unpacked values are compared in their stored precision.
		min, max = float64(float32(min)), float64(float32(max))
	}

	err := v.Slabs(func(offset0 int, slab []float64) error {
		for i, raw := range slab {
			if m.masked(raw) {
				r.Masked++
				continue
			}
			val := raw*scale + offset
			switch {
			case val < min:
				r.LowCount++
				low.Add(Violation{Index: offset0 + i, Value: val})
			case val > max:
				r.HighCount++
				high.Add(Violation{Index: offset0 + i, Value: val})
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gridqc: scanning %s: %v", v.Name(), err)
	}
	r.Lowest = low.Sorted()
	r.Highest = high.Sorted()
	return r, nil
}

// mask holds the raw values that mark missing data.
type mask struct {
	values []float64
}

func newMask(v Variable) mask {
	var m mask
	for _, name := range []string{"_FillValue", "missing_value"} {
		a, ok := v.Attribute(name)
		if !ok {
			continue
		}
		f, ok := a.Floats()
		if !ok {
			continue
		}
		for _, x := range f {
			m.values = append(m.values, x)
			if v.DType() == "float32" {
				// Stored values went through float32.
				m.values = append(m.values, float64(float32(x)))
			}
		}
	}
	return m
}

func (m mask) masked(x float64) bool {
	if math.IsNaN(x) {
		return true
	}
	for _, f := range m.values {
		if x == f {
			return true
		}
	}
	return false
}

// packing returns the scale_factor and add_offset of v, defaulting to 1
// and 0.
func packing(v Variable) (scale, offset float64) {
	scale = 1
	if a, ok := v.Attribute("scale_factor"); ok {
		if f, ok := a.Float(); ok {
			scale = f
		}
	}
	if a, ok := v.Attribute("add_offset"); ok {
		if f, ok := a.Float(); ok {
			offset = f
		}
	}
	return scale, offset
}

// unravel converts a flat row-major index into an index tuple.
func unravel(flat int, shape []int) []int {
	idx := make([]int, len(shape))
	for i := len(shape) - 1; i >= 0; i-- {
		if shape[i] == 0 {
			continue
		}
		idx[i] = flat % shape[i]
		flat /= shape[i]
	}
	return idx
}
