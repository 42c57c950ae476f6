package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/eddyline/eddy/examples/wordcount"
	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/core/util/dot"
	"github.com/eddyline/eddy/pkg/eddy/io/avroio"
	"github.com/eddyline/eddy/pkg/eddy/io/databaseio"
	_ "github.com/eddyline/eddy/pkg/eddy/io/filesystem/httpfs"
	_ "github.com/eddyline/eddy/pkg/eddy/io/filesystem/local"
	"github.com/eddyline/eddy/pkg/eddy/io/textio"
	"github.com/eddyline/eddy/pkg/eddy/runners/direct"
)

// wordCountSchema is the avro schema of a single word count record.
const wordCountSchema = `{
	"type": "record",
	"name": "WordCount",
	"fields": [
		{"name": "word", "type": "string"},
		{"name": "count", "type": "long"}
	]
}`

var wcFlags jobConfig
var wcJobFile string

var wordcountCmd = &cobra.Command{
	Use:   "wordcount",
	Short: "Count words in a text file through both the collection and frame paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(wcJobFile)
		if err != nil {
			return err
		}
		cfg = cfg.merge(wcFlags)
		if cfg.Input == "" {
			return errors.New("no input: set --input or the job file's input")
		}
		if cfg.Output == "" {
			return errors.New("no output: set --output or the job file's output")
		}
		if cfg.CSV == "" {
			return errors.New("no csv output: set --csv or the job file's csv")
		}
		return runWordCount(cmd.Context(), cfg)
	},
}

func init() {
	flags := wordcountCmd.Flags()
	flags.StringVar(&wcFlags.Input, "input", "", "Text file to count (path, glob or http(s) URL)")
	flags.StringVar(&wcFlags.Output, "output", "", "Output file for 'word: count' lines")
	flags.StringVar(&wcFlags.CSV, "csv", "", "Output file for the word/count CSV table")
	flags.StringVar(&wcFlags.Avro, "avro", "", "Optional avro OCF output file")
	flags.StringVar(&wcFlags.SQLite, "sqlite", "", "Optional sqlite database file for word_counts rows")
	flags.StringVar(&wcFlags.Dot, "dot", "", "Optional DOT graph output file")
	flags.StringVar(&wcJobFile, "config", "", "YAML job file")
}

// buildWordCount constructs the full word count pipeline for the given
// configuration.
func buildWordCount(cfg jobConfig) (*eddy.Pipeline, error) {
	p, s := eddy.NewPipelineWithRoot()

	lines := textio.Read(s, cfg.Input)

	// Collection path: count, format, write text.
	counted := wordcount.CountWords(s, lines)
	textio.Write(s, cfg.Output, wordcount.Format(s, counted))

	// Frame path: count as a table, write CSV.
	f, err := wordcount.CountWordsFrame(s, lines)
	if err != nil {
		return nil, err
	}
	f.WriteCSV(s, cfg.CSV)

	if cfg.Avro != "" {
		records := eddy.ParDo(s, avroRecordFn, counted)
		avroio.Write(s, cfg.Avro, wordCountSchema, records)
	}
	if cfg.SQLite != "" {
		rows := eddy.ParDo(s, sqliteRowFn, counted)
		databaseio.Write(s, "sqlite", cfg.SQLite, "word_counts", []string{"word", "count"}, rows)
	}
	return p, nil
}

func runWordCount(ctx context.Context, cfg jobConfig) error {
	if cfg.SQLite != "" {
		if err := createWordCountTable(ctx, cfg.SQLite); err != nil {
			return err
		}
	}

	p, err := buildWordCount(cfg)
	if err != nil {
		return err
	}

	if cfg.Dot != "" {
		if err := writeDot(p, cfg.Dot); err != nil {
			return err
		}
	}

	_, err = direct.Execute(ctx, p)
	return err
}

func avroRecordFn(w any, c int) (string, error) {
	b, err := json.Marshal(map[string]any{"word": w, "count": c})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func sqliteRowFn(w any, c int) map[string]any {
	return map[string]any{"word": w, "count": c}
}

func createWordCountTable(ctx context.Context, dsn string) error {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("opening sqlite database: %w", err)
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS word_counts (word TEXT, count INTEGER)`)
	return err
}

func renderDot(p *eddy.Pipeline, w io.Writer) error {
	edges, nodes, err := p.Build()
	if err != nil {
		return err
	}
	return dot.Render(edges, nodes, w)
}

func writeDot(p *eddy.Pipeline, filename string) error {
	fd, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer fd.Close()
	return renderDot(p, fd)
}
