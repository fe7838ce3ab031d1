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
	"errors"
	"fmt"
	"math"

	"github.com/isimip/gridqc/cftime"
)

// Coordinate is the physical location of one value of a data variable.
type Coordinate struct {
	// Time is the decoded time. It is only valid if HasTime is true.
	Time    cftime.Date
	HasTime bool

	Lat, Lon float64

	// Depth is the storage index along the vertical dimension, set for
	// 3-D variables only.
	Depth    int
	HasDepth bool
}

// CoordinateMapper converts index tuples of a data variable into
// coordinates using the time, lat and lon variables of a dataset.
type CoordinateMapper struct {
	mode     Mode
	times    []float64
	lat, lon []float64
	decoder  *cftime.Decoder

	// timeErr is why times can not be decoded, if they can't.
	timeErr error
}

// EffectiveCalendar returns the calendar used to decode times of a file
// with the given time step. Monthly and annual files always use the
// 360_day calendar; otherwise the calendar attribute of the time
// variable applies. ok is false if there is no calendar to use.
func EffectiveCalendar(timeVar Variable, timeStep string) (calendar string, ok bool) {
	switch timeStep {
	case "monthly", "annual":
		return string(cftime.Day360), true
	}
	if timeVar == nil {
		return "", false
	}
	a, ok := timeVar.Attribute("calendar")
	if !ok {
		return "", false
	}
	return a.String(), true
}

// NewCoordinateMapper prepares coordinate lookups in ds for a data
// variable of mode m. Problems with the coordinate variables do not
// cause an error here; missing lat or lon values map to NaN and time
// decoding problems are returned by Map.
func NewCoordinateMapper(ds Dataset, m Mode, timeStep string) *CoordinateMapper {
	c := &CoordinateMapper{mode: m}
	c.lat = coordinateValues(ds, "lat")
	c.lon = coordinateValues(ds, "lon")

	tv, ok := ds.Variable("time")
	if !ok {
		c.timeErr = errors.New("time variable is missing")
		return c
	}
	units, ok := textAttribute(tv, "units")
	if !ok {
		c.timeErr = errors.New("time.units is missing")
		return c
	}
	cal, ok := EffectiveCalendar(tv, timeStep)
	if !ok {
		c.timeErr = errors.New("time.calendar is missing")
		return c
	}
	var err error
	if c.decoder, err = cftime.NewDecoder(units, cal); err != nil {
		c.timeErr = err
		return c
	}
	if c.times, err = tv.Values(); err != nil {
		c.timeErr = fmt.Errorf("reading time: %v", err)
	}
	return c
}

func coordinateValues(ds Dataset, name string) []float64 {
	v, ok := ds.Variable(name)
	if !ok {
		return nil
	}
	vals, err := v.Values()
	if err != nil {
		return nil
	}
	return vals
}

// Map returns the coordinate of the value at index, which has one
// position per dimension of the data variable. Latitude and longitude
// are taken from the last two positions and the depth, for 3-D
// variables, from the second. If the time can not be decoded the
// coordinate has no time and the reason is returned; the rest of the
// coordinate is still valid.
func (c *CoordinateMapper) Map(index []int) (Coordinate, error) {
	var co Coordinate
	n := len(index)
	co.Lat, co.Lon = math.NaN(), math.NaN()
	if n >= 2 {
		co.Lat = lookup(c.lat, index[n-2])
		co.Lon = lookup(c.lon, index[n-1])
	}
	if c.mode == Mode3D && n >= 4 {
		co.Depth = index[1]
		co.HasDepth = true
	}
	if c.timeErr != nil {
		return co, c.timeErr
	}
	if n == 0 || index[0] >= len(c.times) {
		return co, errors.New("time index out of range")
	}
	d, err := c.decoder.Decode(c.times[index[0]])
	if err != nil {
		return co, err
	}
	co.Time = d
	co.HasTime = true
	return co, nil
}

func lookup(vals []float64, i int) float64 {
	if i < 0 || i >= len(vals) {
		return math.NaN()
	}
	return vals[i]
}
