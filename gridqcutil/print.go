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

package gridqcutil

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/isimip/gridqc"
	"github.com/sirupsen/logrus"
)

// Printer writes check results for the terminal.
type Printer struct {
	w     io.Writer
	level logrus.Level
	tags  map[gridqc.Severity]string
}

// NewPrinter returns a printer writing to w that shows entries at or
// above level.
func NewPrinter(w io.Writer, level logrus.Level, colorize bool) *Printer {
	p := &Printer{w: w, level: level, tags: make(map[gridqc.Severity]string)}
	for s, attr := range map[gridqc.Severity]color.Attribute{
		gridqc.Info:    color.FgCyan,
		gridqc.Warning: color.FgYellow,
		gridqc.Error:   color.FgRed,
	} {
		c := color.New(attr)
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		p.tags[s] = c.Sprint(s.String())
	}
	return p
}

// visible returns whether entries of severity s are shown.
func (p *Printer) visible(s gridqc.Severity) bool {
	switch s {
	case gridqc.Error:
		return p.level >= logrus.ErrorLevel
	case gridqc.Warning:
		return p.level >= logrus.WarnLevel
	}
	return p.level >= logrus.InfoLevel
}

// Print writes the visible entries and the summary line of r.
func (p *Printer) Print(r Result) {
	name := filepath.Base(r.Path)
	if r.Err != nil {
		fmt.Fprintf(p.w, "%s: %s %v\n", name, p.tags[gridqc.Error], r.Err)
	}
	for _, e := range r.Entries {
		if p.visible(e.Severity) {
			fmt.Fprintf(p.w, "%s: %s %s\n", name, p.tags[e.Severity], e.Message)
		}
	}
	fmt.Fprintf(p.w, "%s: %d errors, %d warnings\n", name, r.Errors(), r.Warnings())
}

// PrintAll prints every result and returns an error if any file had
// errors.
func (p *Printer) PrintAll(results []Result) error {
	var failed int
	for _, r := range results {
		p.Print(r)
		if r.Errors() > 0 {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("gridqc: %d of %d files have errors", failed, len(results))
	}
	return nil
}
