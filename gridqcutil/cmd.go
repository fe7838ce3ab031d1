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

// Package gridqcutil contains the gridqc command line interface.
package gridqcutil

import (
	"context"
	"fmt"
	"os"

	"github.com/isimip/gridqc"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to gridqc.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Protocol",
			usage: `
              Protocol is the path to the TOML file holding the variable
              definitions, time units and specifier vocabularies files are
              checked against. It can include environment variables.`,
			shorthand:  "p",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the least severe level that is reported. It is one
              of ERROR, WARN and INFO. Extreme values are only listed at INFO.`,
			defaultVal: "INFO",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "MinMax",
			usage: `
              MinMax is the number of lowest and highest out-of-range values
              that are listed with their coordinates. If MinMax is 0, only
              the number of out-of-range values is reported.`,
			defaultVal: 10,
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "Checks",
			usage: `
              Checks is the list of checks to run, in order.`,
			defaultVal: gridqc.DefaultChecks,
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "Jobs",
			usage: `
              Jobs is the number of files that are checked at the same time.
              The default of 0 uses one job per processor.`,
			shorthand:  "j",
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "LogPath",
			usage: `
              LogPath is a directory where a log is written for every checked
              file. It can include environment variables. If LogPath is left
              blank, no logs are written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
		{
			name: "Color",
			usage: `
              Color specifies whether severities are colorized in the output.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{checkCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GRIDQC")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(checkCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets up logging.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("gridqc: problem reading configuration file: %v", err)
		}
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := parseLogLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "gridqc",
	Short: "A quality checker for gridded model output.",
	Long: `gridqc checks gridded NetCDF files against a protocol of variable
definitions. It reports problems with the file metadata and the values
that are outside of each variable's valid range, together with their
time, latitude, longitude and depth.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GRIDQC_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of gridqc.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("gridqc v%s\n", gridqc.Version)
	},
	DisableAutoGenTag: true,
}

// checkCmd checks the files given as arguments.
var checkCmd = &cobra.Command{
	Use:   "check file...",
	Short: "Check files.",
	Long: `check runs the configured checks against each of the given files
and prints what they found. The command fails if any file has errors.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := LoadConfig(Cfg)
		if err != nil {
			return err
		}
		results, err := CheckFiles(context.Background(), c, args)
		if err != nil {
			return err
		}
		return NewPrinter(cmd.OutOrStdout(), c.Settings.Verbosity, c.Color).PrintAll(results)
	},
	DisableAutoGenTag: true,
}
