/*
Copyright © 2018 the EFTS authors.
This file is part of EFTS.

EFTS is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

EFTS is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with EFTS.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package eftsutil holds the command-line interface for working with
// Ensemble Forecast Time Series netCDF files.
package eftsutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/hydroforecast/efts"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log is the logger used by the commands.
var Log *logrus.Logger

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	Log = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Options are the configuration options available to the commands.
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
			name: "output",
			usage: `
              output specifies the path of the netCDF file to create.`,
			shorthand:  "o",
			defaultVal: "forecasts.nc",
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "title",
			usage: `
              title is the title global attribute of the new file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "institution",
			usage: `
              institution is the institution global attribute of the new file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "source",
			usage: `
              source is the source global attribute of the new file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "catchment",
			usage: `
              catchment is the catchment global attribute of the new file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "comment",
			usage: `
              comment is the comment global attribute of the new file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "start",
			usage: `
              start is the first instant of the time axis, in the format
              2006-01-02T15:04:05.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "timesteps",
			usage: `
              timesteps is the number of instants on the time axis.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "timestep",
			usage: `
              timestep is the unit of the time axis: seconds, minutes,
              hours or days.`,
			defaultVal: "days",
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "stations",
			usage: `
              stations lists the integer station identifiers.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "variables",
			usage: `
              variables lists the forecast data variables to define, each
              as name:code where code is the dimensionality character 2,
              3 or 4.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "leadtimes",
			usage: `
              leadtimes is the length of the lead_time dimension.`,
			defaultVal: 48,
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
		{
			name: "members",
			usage: `
              members is the length of the ens_member dimension.`,
			defaultVal: 50,
			flagsets:   []*pflag.FlagSet{createCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("EFTS")

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
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
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
	Root.AddCommand(infoCmd)
	Root.AddCommand(createCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("efts: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "efts",
	Short: "A tool for ensemble forecast time series netCDF files.",
	Long: `efts inspects and creates netCDF files following the STF convention
for ensemble forecast time series in water forecasting.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'EFTS_var' where 'var' is
the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of efts.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("efts v%s\n", efts.Version)
	},
	DisableAutoGenTag: true,
}

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Describe an EFTS netCDF file.",
	Long: `info prints the header of an EFTS netCDF file and reports whether the
file satisfies the mandatory dimension, variable and global attribute sets
of the convention.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := efts.Open(args[0])
		if err != nil {
			return err
		}
		defer d.Close()
		fmt.Println(d.Summary())
		Log.WithFields(logrus.Fields{
			"dimensions": d.HasRequiredDimensions(),
			"variables":  d.HasRequiredVariables(),
			"attributes": d.HasRequiredGlobalAttributes(),
			"stations":   d.StationCount(),
			"leadtimes":  d.LeadTimeCount(),
			"members":    d.EnsembleSize(),
			"timesteps":  len(d.TimeValues()),
		}).Info("checked file against the convention")
		return nil
	},
	DisableAutoGenTag: true,
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an empty EFTS netCDF file.",
	Long: `create builds a new netCDF file laid out for ensemble forecast time
series, with its coordinate variables written and its forecast data
variables filled with their missing value codes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stations, err := cast.ToIntSliceE(Cfg.Get("stations"))
		if err != nil {
			return fmt.Errorf("efts: parsing stations: %v", err)
		}
		defs, err := parseVarFlags(Cfg.GetStringSlice("variables"))
		if err != nil {
			return err
		}
		start, err := time.Parse("2006-01-02T15:04:05", Cfg.GetString("start"))
		if err != nil {
			return fmt.Errorf("efts: parsing start instant: %v", err)
		}
		globals := efts.NewGlobalAttributes(
			Cfg.GetString("title"),
			Cfg.GetString("institution"),
			Cfg.GetString("source"),
			Cfg.GetString("catchment"),
			Cfg.GetString("comment"),
		)
		axis := efts.TimeInfo{
			Start: start,
			N:     Cfg.GetInt("timesteps"),
			Step:  Cfg.GetString("timestep"),
		}
		opts := &efts.CreateOptions{
			LeadLength:     Cfg.GetInt("leadtimes"),
			EnsembleLength: Cfg.GetInt("members"),
		}
		output := Cfg.GetString("output")
		d, err := efts.Create(output, globals, axis, stations, defs, opts)
		if err != nil {
			return err
		}
		if err := d.Close(); err != nil {
			return err
		}
		Log.WithFields(logrus.Fields{
			"file":      output,
			"stations":  len(stations),
			"variables": len(defs),
			"timesteps": axis.N,
		}).Info("created file")
		return nil
	},
	DisableAutoGenTag: true,
}

// parseVarFlags converts name:code flag values to variable definitions.
func parseVarFlags(specs []string) ([]efts.VarDef, error) {
	records := make([]efts.VarRecord, len(specs))
	for i, s := range specs {
		parts := strings.SplitN(s, ":", 2)
		records[i].Name = parts[0]
		if len(parts) == 2 {
			records[i].Dims = parts[1]
		} else {
			records[i].Dims = "4"
		}
	}
	return efts.ParseVarDefs(records)
}
