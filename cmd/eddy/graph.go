package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

var graphFlags jobConfig
var graphJobFile string
var graphOut string

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Render the word count execution plan as a DOT graph without running it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(graphJobFile)
		if err != nil {
			return err
		}
		cfg = cfg.merge(graphFlags)
		if cfg.Input == "" {
			return errors.New("no input: set --input or the job file's input")
		}
		// The sinks are part of the plan even though nothing runs.
		if cfg.Output == "" {
			cfg.Output = "counts.txt"
		}
		if cfg.CSV == "" {
			cfg.CSV = "counts.csv"
		}

		p, err := buildWordCount(cfg)
		if err != nil {
			return err
		}
		if graphOut == "" {
			return renderDot(p, cmd.OutOrStdout())
		}
		fd, err := os.Create(graphOut)
		if err != nil {
			return err
		}
		defer fd.Close()
		return renderDot(p, fd)
	},
}

func init() {
	flags := graphCmd.Flags()
	flags.StringVar(&graphFlags.Input, "input", "", "Text file to count (path, glob or http(s) URL)")
	flags.StringVar(&graphFlags.Output, "output", "", "Text sink named in the plan")
	flags.StringVar(&graphFlags.CSV, "csv", "", "CSV sink named in the plan")
	flags.StringVar(&graphJobFile, "config", "", "YAML job file")
	flags.StringVar(&graphOut, "out", "", "DOT output file (default: stdout)")
}
