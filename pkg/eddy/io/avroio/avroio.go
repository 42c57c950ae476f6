// Package avroio contains transforms for reading and writing avro files.
package avroio

import (
	"context"
	"encoding/json"

	"github.com/linkedin/goavro/v2"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/io/filesystem"
	"github.com/eddyline/eddy/pkg/eddy/log"
)

// Read reads a set of avro object container files and returns the records as
// a PCollection<string> of JSON documents, one per record.
func Read(s eddy.Scope, glob string) eddy.PCollection {
	s = s.Scope("avroio.Read")
	filesystem.ValidateScheme(glob)
	return read(s, eddy.Create(s, glob))
}

func read(s eddy.Scope, col eddy.PCollection) eddy.PCollection {
	files := eddy.ParDo(s, expandFn, col)
	return eddy.ParDo(s, readAvroFn, files)
}

func expandFn(ctx context.Context, glob string, emit func(string)) error {
	fs, err := filesystem.New(ctx, glob)
	if err != nil {
		return err
	}
	defer fs.Close()

	files, err := fs.List(ctx, glob)
	if err != nil {
		return err
	}
	for _, filename := range files {
		emit(filename)
	}
	return nil
}

func readAvroFn(ctx context.Context, filename string, emit func(string)) error {
	log.Infof(ctx, "Reading AVRO from %v", filename)

	fs, err := filesystem.New(ctx, filename)
	if err != nil {
		return err
	}
	defer fs.Close()

	fd, err := fs.OpenRead(ctx, filename)
	if err != nil {
		return err
	}
	defer fd.Close()

	ar, err := goavro.NewOCFReader(fd)
	if err != nil {
		return err
	}
	for ar.Scan() {
		native, err := ar.Read()
		if err != nil {
			return err
		}
		b, err := json.Marshal(native)
		if err != nil {
			return err
		}
		emit(string(b))
	}
	return ar.Err()
}

// Write writes a PCollection<string> of JSON documents to an avro object
// container file. Each document must match the given avro schema; the write
// fails if it does not.
func Write(s eddy.Scope, filename, schema string, col eddy.PCollection) {
	s = s.Scope("avroio.Write")
	filesystem.ValidateScheme(filename)

	pre := eddy.AddFixedKey(s, col)
	post := eddy.GroupByKey(s, pre)
	eddy.ParDo0(s, &writeAvroFn{Filename: filename, Schema: schema}, post)
}

type writeAvroFn struct {
	Filename string
	Schema   string
}

func (w *writeAvroFn) ProcessElement(ctx context.Context, _ int, lines func(*string) bool) error {
	fs, err := filesystem.New(ctx, w.Filename)
	if err != nil {
		return err
	}
	defer fs.Close()

	fd, err := fs.OpenWrite(ctx, w.Filename)
	if err != nil {
		return err
	}
	defer fd.Close()

	codec, err := goavro.NewCodec(w.Schema)
	if err != nil {
		return err
	}

	log.Infof(ctx, "Writing AVRO to %v", w.Filename)

	ocfw, err := goavro.NewOCFWriter(goavro.OCFConfig{
		Codec:  codec,
		Schema: w.Schema,
		W:      fd,
	})
	if err != nil {
		return err
	}

	var j string
	for lines(&j) {
		native, _, err := codec.NativeFromTextual([]byte(j))
		if err != nil {
			return err
		}
		if err := ocfw.Append([]any{native}); err != nil {
			return err
		}
	}
	return nil
}
