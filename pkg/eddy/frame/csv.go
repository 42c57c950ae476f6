package frame

import (
	"context"
	"encoding/csv"
	"fmt"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/io/filesystem"
	"github.com/eddyline/eddy/pkg/eddy/log"
)

// WriteCSV writes the frame to a CSV file with a header row of the column
// names. Row order in the file is unspecified.
func (f *Frame) WriteCSV(s eddy.Scope, filename string) {
	s = s.Scope("frame.WriteCSV")

	filesystem.ValidateScheme(filename)

	pre := eddy.AddFixedKey(s, f.col)
	post := eddy.GroupByKey(s, pre)
	eddy.ParDo0(s, &writeCSVFn{Filename: filename, Header: f.schema.Names()}, post)
}

type writeCSVFn struct {
	Filename string
	Header   []string
}

func (w *writeCSVFn) ProcessElement(ctx context.Context, _ int, rows func(*Row) bool) error {
	fs, err := filesystem.New(ctx, w.Filename)
	if err != nil {
		return err
	}
	defer fs.Close()

	fd, err := fs.OpenWrite(ctx, w.Filename)
	if err != nil {
		return err
	}

	log.Infof(ctx, "Writing CSV to %v", w.Filename)

	cw := csv.NewWriter(fd)
	if err := cw.Write(w.Header); err != nil {
		return err
	}
	var row Row
	for rows(&row) {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return fd.Close()
}
