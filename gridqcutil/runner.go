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
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/isimip/gridqc"
	"github.com/isimip/gridqc/ncdata"
	"github.com/isimip/gridqc/specifiers"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of checking one file.
type Result struct {
	Path    string
	Entries []gridqc.Entry

	// Err is set if the file could not be checked at all.
	Err error
}

// Errors returns the number of errors for the file, counting a failure
// to check it as one.
func (r Result) Errors() int {
	n := r.count(gridqc.Error)
	if r.Err != nil {
		n++
	}
	return n
}

// Warnings returns the number of warnings for the file.
func (r Result) Warnings() int { return r.count(gridqc.Warning) }

func (r Result) count(s gridqc.Severity) int {
	var n int
	for _, e := range r.Entries {
		if e.Severity == s {
			n++
		}
	}
	return n
}

// CheckFiles checks the files at paths, c.Jobs at a time. The results
// are in the same order as paths. An error is only returned if ctx is
// canceled; problems with individual files are part of their results.
func CheckFiles(ctx context.Context, c *Config, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(c, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkFile(c *Config, path string) Result {
	log := logrus.WithField("file", path)
	log.Debug("checking file")

	spec, err := specifiers.Parse(path, c.Protocol)
	if err != nil {
		log.WithError(err).Error("skipping file")
		return Result{Path: path, Err: err}
	}
	ds, err := ncdata.Open(path)
	if err != nil {
		log.WithError(err).Error("skipping file")
		return Result{Path: path, Err: err}
	}
	defer ds.Close()

	var mirror logrus.FieldLogger
	if c.LogPath != "" {
		lf, err := os.Create(logFile(c.LogPath, path))
		if err != nil {
			log.WithError(err).Error("skipping file")
			return Result{Path: path, Err: err}
		}
		defer lf.Close()
		mirror = fileLogger(lf, c.Settings.Verbosity).WithField("file", filepath.Base(path))
	}

	f := gridqc.NewFile(path, ds, spec, c.Protocol, c.Settings, mirror)
	f.Run(c.Checks)
	log.WithFields(logrus.Fields{
		"errors":   f.Count(gridqc.Error),
		"warnings": f.Count(gridqc.Warning),
	}).Debug("finished file")
	return Result{Path: path, Entries: f.Entries()}
}

// logFile returns the location of the log of the file at path.
func logFile(dir, path string) string {
	base := filepath.Base(path)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".log")
}

// fileLogger returns a logger writing plain text to f.
func fileLogger(f *os.File, level logrus.Level) *logrus.Logger {
	return &logrus.Logger{
		Out:       f,
		Formatter: &logrus.TextFormatter{DisableColors: true, FullTimestamp: true},
		Hooks:     make(logrus.LevelHooks),
		Level:     level,
	}
}
