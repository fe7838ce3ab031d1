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

	"github.com/sirupsen/logrus"
)

// Severity is the importance of a diagnostic entry.
type Severity int

// The severities, from least to most severe.
const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Entry is a single diagnostic.
type Entry struct {
	Severity Severity
	Message  string
}

func (e Entry) String() string { return e.Severity.String() + " " + e.Message }

// Ledger is the ordered, append-only list of diagnostics produced for
// one file. It is not safe for concurrent use; each file pass owns its
// own Ledger.
type Ledger struct {
	entries []Entry

	// Log, if not nil, receives a copy of every entry as it is added.
	Log logrus.FieldLogger
}

// NewLedger returns an empty ledger that mirrors its entries to log,
// which may be nil.
func NewLedger(log logrus.FieldLogger) *Ledger {
	return &Ledger{Log: log}
}

func (l *Ledger) add(s Severity, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.entries = append(l.entries, Entry{Severity: s, Message: msg})
	if l.Log == nil {
		return
	}
	switch s {
	case Info:
		l.Log.Info(msg)
	case Warning:
		l.Log.Warn(msg)
	default:
		l.Log.Error(msg)
	}
}

// Info adds an informational entry.
func (l *Ledger) Info(format string, args ...interface{}) { l.add(Info, format, args...) }

// Warn adds a warning.
func (l *Ledger) Warn(format string, args ...interface{}) { l.add(Warning, format, args...) }

// Error adds an error.
func (l *Ledger) Error(format string, args ...interface{}) { l.add(Error, format, args...) }

// Entries returns the entries in the order they were added.
// The returned slice must not be modified.
func (l *Ledger) Entries() []Entry { return l.entries }

// Count returns the number of entries with severity s.
func (l *Ledger) Count(s Severity) int {
	var n int
	for _, e := range l.entries {
		if e.Severity == s {
			n++
		}
	}
	return n
}

// HasErrors returns whether any error has been added.
func (l *Ledger) HasErrors() bool { return l.Count(Error) > 0 }

// HasWarnings returns whether any warning has been added.
func (l *Ledger) HasWarnings() bool { return l.Count(Warning) > 0 }
