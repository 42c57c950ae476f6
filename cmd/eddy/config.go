package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// jobConfig is the YAML job file format. Flags override any value set here.
type jobConfig struct {
	// Input is a local path, glob or http(s) URL of the text to count.
	Input string `yaml:"input"`
	// Output is the "word: count" text sink.
	Output string `yaml:"output"`
	// CSV is the frame-path word/count table sink.
	CSV string `yaml:"csv"`
	// Avro, if set, additionally writes word/count records as an avro OCF.
	Avro string `yaml:"avro"`
	// SQLite, if set, additionally inserts word/count rows into this
	// database file.
	SQLite string `yaml:"sqlite"`
	// Dot, if set, writes a DOT rendering of the pipeline.
	Dot string `yaml:"dot"`
}

func loadConfig(path string) (jobConfig, error) {
	var cfg jobConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading job file %v: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing job file %v: %w", path, err)
	}
	return cfg, nil
}

// merge fills empty config fields from flag values and returns the result.
func (c jobConfig) merge(flags jobConfig) jobConfig {
	if flags.Input != "" {
		c.Input = flags.Input
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.CSV != "" {
		c.CSV = flags.CSV
	}
	if flags.Avro != "" {
		c.Avro = flags.Avro
	}
	if flags.SQLite != "" {
		c.SQLite = flags.SQLite
	}
	if flags.Dot != "" {
		c.Dot = flags.Dot
	}
	return c
}
