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

// Package cftime decodes numeric time coordinates that follow the
// CF conventions, i.e. values with units of the form
// "<unit> since <reference date>" interpreted in one of the CF calendars.
//
// Decoded dates are returned as Date values rather than time.Time because
// most CF calendars (360_day, noleap, all_leap, julian and the mixed
// standard calendar) cannot be represented by the Go time package.
package cftime

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnsupported is returned (wrapped) for units or calendars that can
// not be decoded.
var ErrUnsupported = errors.New("cftime: unsupported")

// Calendar is a CF calendar name in its canonical form.
type Calendar string

// The CF calendars.
const (
	Standard           Calendar = "standard"
	ProlepticGregorian Calendar = "proleptic_gregorian"
	Julian             Calendar = "julian"
	NoLeap             Calendar = "noleap"
	AllLeap            Calendar = "all_leap"
	Day360             Calendar = "360_day"
)

// ParseCalendar returns the canonical calendar for the attribute value s.
// Matching is case insensitive and accepts the CF aliases
// (gregorian, 365_day, 366_day).
func ParseCalendar(s string) (Calendar, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "gregorian":
		return Standard, nil
	case "proleptic_gregorian":
		return ProlepticGregorian, nil
	case "julian":
		return Julian, nil
	case "noleap", "365_day":
		return NoLeap, nil
	case "all_leap", "366_day":
		return AllLeap, nil
	case "360_day":
		return Day360, nil
	}
	return "", fmt.Errorf("%w calendar %q", ErrUnsupported, s)
}

// Date is a calendar date and time of day.
type Date struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Microsecond          int
}

// String formats the date as "YYYY-MM-DD hh:mm:ss", with a fractional
// second only when it is non-zero.
func (d Date) String() string {
	s := fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
	if d.Microsecond != 0 {
		s += fmt.Sprintf(".%06d", d.Microsecond)
	}
	return s
}

const secondsPerDay = 86400

// Decoder converts numeric time values with fixed units and calendar
// into dates.
type Decoder struct {
	cal        Calendar
	step       float64 // length of one unit, in seconds
	refDay     int     // reference date as a day number in cal
	refSeconds float64 // reference time of day, in seconds
}

// NewDecoder returns a decoder for values in the given units
// (e.g. "days since 1661-01-01 00:00:00") and calendar.
func NewDecoder(units, calendar string) (*Decoder, error) {
	cal, err := ParseCalendar(calendar)
	if err != nil {
		return nil, err
	}
	unit, ref, err := splitUnits(units)
	if err != nil {
		return nil, err
	}
	step, err := unitSeconds(unit, cal)
	if err != nil {
		return nil, err
	}
	date, err := parseReference(ref)
	if err != nil {
		return nil, err
	}
	day, err := dayNumber(cal, date.Year, date.Month, date.Day)
	if err != nil {
		return nil, fmt.Errorf("cftime: reference date %q: %w", ref, err)
	}
	return &Decoder{
		cal:    cal,
		step:   step,
		refDay: day,
		refSeconds: float64(date.Hour*3600+date.Minute*60+date.Second) +
			float64(date.Microsecond)/1e6,
	}, nil
}

// Decode returns the date corresponding to the time value v.
func (d *Decoder) Decode(v float64) (Date, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Date{}, fmt.Errorf("cftime: invalid time value %v", v)
	}
	total := d.refSeconds + v*d.step
	days := math.Floor(total / secondsPerDay)
	micro := int64(math.Round((total - days*secondsPerDay) * 1e6))
	if micro >= secondsPerDay*1e6 {
		days++
		micro -= secondsPerDay * 1e6
	}
	y, m, dd := fromDayNumber(d.cal, d.refDay+int(days))
	secs := int(micro / 1e6)
	return Date{
		Year: y, Month: m, Day: dd,
		Hour:        secs / 3600,
		Minute:      secs % 3600 / 60,
		Second:      secs % 60,
		Microsecond: int(micro % 1e6),
	}, nil
}

// Num2Date decodes a single value. Use a Decoder when many values share
// the same units and calendar.
func Num2Date(v float64, units, calendar string) (Date, error) {
	d, err := NewDecoder(units, calendar)
	if err != nil {
		return Date{}, err
	}
	return d.Decode(v)
}

func splitUnits(units string) (unit, ref string, err error) {
	parts := strings.SplitN(strings.TrimSpace(units), " since ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return "", "", fmt.Errorf("%w time units %q", ErrUnsupported, units)
	}
	return strings.ToLower(strings.TrimSpace(parts[0])), strings.TrimSpace(parts[1]), nil
}

// unitSeconds returns the length of unit in seconds. Months and years only
// have a fixed length in calendars with fixed month or year lengths.
func unitSeconds(unit string, cal Calendar) (float64, error) {
	switch unit {
	case "microseconds", "microsecond", "us":
		return 1e-6, nil
	case "milliseconds", "millisecond", "ms":
		return 1e-3, nil
	case "seconds", "second", "secs", "sec", "s":
		return 1, nil
	case "minutes", "minute", "mins", "min":
		return 60, nil
	case "hours", "hour", "hrs", "hr", "h":
		return 3600, nil
	case "days", "day", "d":
		return secondsPerDay, nil
	case "months", "month":
		if cal == Day360 {
			return 30 * secondsPerDay, nil
		}
	case "years", "year":
		switch cal {
		case Day360:
			return 360 * secondsPerDay, nil
		case NoLeap:
			return 365 * secondsPerDay, nil
		case AllLeap:
			return 366 * secondsPerDay, nil
		}
	}
	return 0, fmt.Errorf("%w unit %q for calendar %s", ErrUnsupported, unit, cal)
}

// parseReference parses reference dates such as "1661-01-01",
// "1661-1-1 00:00:00", "1900-01-01T12:00:00Z" or "1850-01-01 00:00:00 UTC".
// Only zero time zone offsets are accepted.
func parseReference(s string) (Date, error) {
	var d Date
	t := s
	if i := strings.IndexByte(t, 'T'); i > 0 && i+1 < len(t) && isDigit(t[i-1]) && isDigit(t[i+1]) {
		t = t[:i] + " " + t[i+1:]
	}
	t = strings.TrimSuffix(t, "Z")
	f := strings.Fields(t)
	if len(f) == 0 || len(f) > 3 {
		return d, fmt.Errorf("%w reference date %q", ErrUnsupported, s)
	}
	if _, err := fmt.Sscanf(f[0], "%d-%d-%d", &d.Year, &d.Month, &d.Day); err != nil {
		return d, fmt.Errorf("%w reference date %q", ErrUnsupported, s)
	}
	if len(f) > 1 {
		if err := parseClock(f[1], &d); err != nil {
			return d, fmt.Errorf("%w reference time %q", ErrUnsupported, s)
		}
	}
	if len(f) > 2 {
		switch f[2] {
		case "UTC", "utc", "GMT", "+00:00", "+0000", "-00:00", "00:00", "+0", "0":
		default:
			return d, fmt.Errorf("%w time zone in %q", ErrUnsupported, s)
		}
	}
	if d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 31 ||
		d.Hour > 23 || d.Minute > 59 || d.Second > 60 {
		return d, fmt.Errorf("%w reference date %q", ErrUnsupported, s)
	}
	return d, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func parseClock(s string, d *Date) error {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return fmt.Errorf("invalid clock %q", s)
	}
	if _, err := fmt.Sscanf(parts[0]+" "+parts[1], "%d %d", &d.Hour, &d.Minute); err != nil {
		return err
	}
	if len(parts) == 3 {
		var sec float64
		if _, err := fmt.Sscanf(parts[2], "%g", &sec); err != nil {
			return err
		}
		d.Second = int(sec)
		d.Microsecond = int(math.Round((sec - float64(d.Second)) * 1e6))
	}
	return nil
}
