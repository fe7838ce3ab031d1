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

package cftime

import "fmt"

// gregorianStart is the Julian day number of 1582-10-15, the first day
// of the Gregorian calendar in the standard calendar.
const gregorianStart = 2299161

var (
	cumDays     = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}
	cumDaysLeap = [13]int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}
)

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int { return a - floorDiv(a, b)*b }

func isGregorianLeap(y int) bool { return floorMod(y, 4) == 0 && (floorMod(y, 100) != 0 || floorMod(y, 400) == 0) }

func isJulianLeap(y int) bool { return floorMod(y, 4) == 0 }

// monthLength returns the number of days in month m of year y.
func monthLength(cal Calendar, y, m int) int {
	switch cal {
	case Day360:
		return 30
	case NoLeap:
		return cumDays[m] - cumDays[m-1]
	case AllLeap:
		return cumDaysLeap[m] - cumDaysLeap[m-1]
	}
	leap := isGregorianLeap(y)
	if cal == Julian || (cal == Standard && y < 1582) {
		leap = isJulianLeap(y)
	}
	if leap {
		return cumDaysLeap[m] - cumDaysLeap[m-1]
	}
	return cumDays[m] - cumDays[m-1]
}

// dayNumber returns a day count for the date y-m-d in cal. Day numbers
// are only comparable within one calendar. For the real-world calendars
// they are Julian day numbers.
func dayNumber(cal Calendar, y, m, d int) (int, error) {
	if m < 1 || m > 12 || d < 1 || d > monthLength(cal, y, m) {
		return 0, fmt.Errorf("%w date %04d-%02d-%02d in calendar %s", ErrUnsupported, y, m, d, cal)
	}
	switch cal {
	case Day360:
		return y*360 + (m-1)*30 + d - 1, nil
	case NoLeap:
		return y*365 + cumDays[m-1] + d - 1, nil
	case AllLeap:
		return y*366 + cumDaysLeap[m-1] + d - 1, nil
	case ProlepticGregorian:
		return gregorianJDN(y, m, d), nil
	case Julian:
		return julianJDN(y, m, d), nil
	}
	// Standard: Julian before the reform, Gregorian after. The ten days
	// skipped by the reform do not exist.
	if y < 1582 || (y == 1582 && (m < 10 || (m == 10 && d < 5))) {
		return julianJDN(y, m, d), nil
	}
	if y == 1582 && m == 10 && d < 15 {
		return 0, fmt.Errorf("%w date %04d-%02d-%02d does not exist in calendar %s", ErrUnsupported, y, m, d, cal)
	}
	return gregorianJDN(y, m, d), nil
}

// fromDayNumber is the inverse of dayNumber.
func fromDayNumber(cal Calendar, n int) (y, m, d int) {
	switch cal {
	case Day360:
		y = floorDiv(n, 360)
		r := n - y*360
		return y, r/30 + 1, r%30 + 1
	case NoLeap:
		return fromFixedYear(n, 365, &cumDays)
	case AllLeap:
		return fromFixedYear(n, 366, &cumDaysLeap)
	case ProlepticGregorian:
		return gregorianFromJDN(n)
	case Julian:
		return julianFromJDN(n)
	}
	if n < gregorianStart {
		return julianFromJDN(n)
	}
	return gregorianFromJDN(n)
}

func fromFixedYear(n, length int, cum *[13]int) (y, m, d int) {
	y = floorDiv(n, length)
	r := n - y*length
	m = 1
	for r >= cum[m] {
		m++
	}
	return y, m, r - cum[m-1] + 1
}

func gregorianJDN(y, m, d int) int {
	a := floorDiv(14-m, 12)
	yy := y + 4800 - a
	mm := m + 12*a - 3
	return d + floorDiv(153*mm+2, 5) + 365*yy + floorDiv(yy, 4) - floorDiv(yy, 100) + floorDiv(yy, 400) - 32045
}

func julianJDN(y, m, d int) int {
	a := floorDiv(14-m, 12)
	yy := y + 4800 - a
	mm := m + 12*a - 3
	return d + floorDiv(153*mm+2, 5) + 365*yy + floorDiv(yy, 4) - 32083
}

func gregorianFromJDN(n int) (y, m, d int) {
	a := n + 32044
	b := floorDiv(4*a+3, 146097)
	c := a - floorDiv(146097*b, 4)
	return fromCycle(c, 100*b)
}

func julianFromJDN(n int) (y, m, d int) {
	return fromCycle(n+32082, 0)
}

func fromCycle(c, century int) (y, m, d int) {
	dd := floorDiv(4*c+3, 1461)
	e := c - floorDiv(1461*dd, 4)
	mm := floorDiv(5*e+2, 153)
	d = e - floorDiv(153*mm+2, 5) + 1
	m = mm + 3 - 12*floorDiv(mm, 10)
	y = century + dd - 4800 + floorDiv(mm, 10)
	return y, m, d
}
