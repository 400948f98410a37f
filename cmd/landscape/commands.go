// seehuhn.de/go/landscape - decision landscape figures
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seehuhn.de/go/landscape"
	"seehuhn.de/go/landscape/config"
	"seehuhn.de/go/landscape/grid"
	"seehuhn.de/go/landscape/testcases"
)

type renderFlags struct {
	config  string
	input   string
	demo    string
	output  string
	verbose bool
}

func newRenderCmd() *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a figure from a CSV table or a built-in demo table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "figure configuration (.yaml, .yml or .toml)")
	fl.StringVarP(&f.input, "input", "i", "", "CSV file with the sweep results")
	fl.StringVar(&f.demo, "demo", "", "use a built-in table instead of --input (see \"landscape demos\")")
	fl.StringVarP(&f.output, "output", "o", "", "output file, overrides the configuration")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log per-panel progress")
	return cmd
}

func runRender(cmd *cobra.Command, f *renderFlags) error {
	switch {
	case f.input == "" && f.demo == "":
		return errors.New("no input table, use --input or --demo")
	case f.input != "" && f.demo != "":
		return errors.New("--input and --demo cannot be combined")
	}

	logger, err := newLogger(f.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := &config.Config{}
	if f.config != "" {
		cfg, err = config.Load(f.config)
		if err != nil {
			return err
		}
	}
	if f.output != "" {
		cfg.Output = config.Output{Path: f.output}
	}
	if cfg.Output.Path == "" {
		return errors.New("no output file, use --output")
	}
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	opts.Logger = logger

	var table *grid.Table
	if f.demo != "" {
		tc, ok := testcases.Lookup(f.demo)
		if !ok {
			return fmt.Errorf("unknown demo %q", f.demo)
		}
		table = tc.Table()
		if f.config == "" {
			if opts.Palette, err = tc.Palette(); err != nil {
				return err
			}
			opts.Threshold = tc.Threshold
		}
	} else {
		fd, err := os.Open(f.input)
		if err != nil {
			return err
		}
		table, err = grid.ReadCSV(fd, cfg.Input)
		fd.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", f.input, err)
		}
		logger.Debug("table loaded",
			zap.String("file", f.input),
			zap.Int("records", table.Len()))
	}

	fig, err := landscape.Render(table, opts)
	if err != nil {
		return err
	}
	if err := fig.WriteFile(cfg.Output.Path, format); err != nil {
		return err
	}
	if len(fig.Warnings) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d annotation warnings\n", len(fig.Warnings))
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	return cfg.Build()
}

func newDefaultsCmd() *cobra.Command {
	var preset, format string
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print a built-in figure configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Preset(preset)
			if err != nil {
				return err
			}
			var data []byte
			switch format {
			case "yaml":
				data, err = cfg.YAML()
			case "toml":
				data, err = cfg.TOML()
			default:
				return fmt.Errorf("unsupported format %q", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "study", "built-in configuration (study, storage, retrofit or bfccs)")
	cmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml or toml)")
	return cmd
}

func newDemosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demos",
		Short: "List the built-in demo tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
				for _, tc := range testcases.All[category] {
					fmt.Fprintf(w, "%-28s %s\n", category+"_"+tc.Name, tc.Description)
				}
			}
			return nil
		},
	}
}
