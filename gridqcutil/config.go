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
	"os"
	"runtime"
	"strings"

	"github.com/isimip/gridqc"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// Config holds everything a check run needs. It is built once and
// shared read-only by all workers.
type Config struct {
	Settings gridqc.Settings
	Protocol *gridqc.Protocol
	Checks   []gridqc.Check

	// Jobs is the number of files checked concurrently.
	Jobs int

	// LogPath is the directory per-file logs are written to, or empty.
	LogPath string

	// Color specifies whether severities are colorized.
	Color bool
}

// LoadConfig builds a Config from the values in cfg.
func LoadConfig(cfg *viper.Viper) (*Config, error) {
	level, err := parseLogLevel(cfg.GetString("LogLevel"))
	if err != nil {
		return nil, err
	}
	minMax, err := cast.ToIntE(cfg.Get("MinMax"))
	if err != nil {
		return nil, fmt.Errorf("gridqc: invalid MinMax: %v", err)
	}
	if minMax < 0 {
		return nil, fmt.Errorf("gridqc: MinMax must not be negative but is %d", minMax)
	}
	p, err := loadProtocol(cfg.GetString("Protocol"))
	if err != nil {
		return nil, err
	}
	names, err := checkNames(cfg.Get("Checks"))
	if err != nil {
		return nil, err
	}
	checks, err := gridqc.Checks(names...)
	if err != nil {
		return nil, err
	}
	logPath, err := checkLogPath(cfg.GetString("LogPath"))
	if err != nil {
		return nil, err
	}
	jobs := cfg.GetInt("Jobs")
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return &Config{
		Settings: gridqc.Settings{MinMax: minMax, Verbosity: level},
		Protocol: p,
		Checks:   checks,
		Jobs:     jobs,
		LogPath:  logPath,
		Color:    cfg.GetBool("Color"),
	}, nil
}

// parseLogLevel converts one of ERROR, WARN or INFO to a logrus level.
func parseLogLevel(s string) (logrus.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return logrus.ErrorLevel, nil
	case "WARN", "WARNING":
		return logrus.WarnLevel, nil
	case "INFO":
		return logrus.InfoLevel, nil
	}
	return 0, fmt.Errorf("gridqc: the LogLevel option must be ERROR, WARN or INFO but is `%s`", s)
}

func loadProtocol(path string) (*gridqc.Protocol, error) {
	if path == "" {
		return nil, fmt.Errorf("gridqc: you need to specify the Protocol option (for example: --Protocol=protocol.toml)")
	}
	return gridqc.LoadProtocol(path)
}

// checkNames expands the Checks option into a list of check names.
// Values set through environment variables arrive as a single
// comma-separated string.
func checkNames(v interface{}) ([]string, error) {
	names, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("gridqc: invalid Checks: %v", err)
	}
	var o []string
	for _, n := range names {
		for _, s := range strings.Split(n, ",") {
			if s = strings.TrimSpace(s); s != "" {
				o = append(o, s)
			}
		}
	}
	return o, nil
}

// checkLogPath expands environment variables in the log directory and
// makes sure it exists.
func checkLogPath(dir string) (string, error) {
	if dir == "" {
		return "", nil
	}
	dir = os.ExpandEnv(dir)
	fi, err := os.Stat(dir)
	if err != nil {
		return dir, fmt.Errorf("gridqc: the LogPath directory doesn't exist: %v", err)
	}
	if !fi.IsDir() {
		return dir, fmt.Errorf("gridqc: LogPath %s is not a directory", dir)
	}
	return dir, nil
}
