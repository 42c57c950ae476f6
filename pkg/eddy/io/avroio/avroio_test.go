package avroio

import (
	"testing"

	"github.com/eddyline/eddy/pkg/eddy"
	_ "github.com/eddyline/eddy/pkg/eddy/io/filesystem/memfs"
	"github.com/eddyline/eddy/pkg/eddy/testing/passert"
	"github.com/eddyline/eddy/pkg/eddy/testing/ptest"
)

func TestMain(m *testing.M) {
	ptest.Main(m)
}

const testSchema = `{
	"type": "record",
	"name": "word_count",
	"fields": [
		{ "name": "word", "type": "string" },
		{ "name": "count", "type": "long" }
	]
}`

func TestWriteRead(t *testing.T) {
	const filename = "memfs://avroio/counts.avro"

	p, s := eddy.NewPipelineWithRoot()
	records := eddy.Create(s,
		`{"word": "blue", "count": 2}`,
		`{"word": "green", "count": 1}`,
	)
	Write(s, filename, testSchema, records)
	ptest.RunAndValidate(t, p)

	p, s = eddy.NewPipelineWithRoot()
	got := Read(s, filename)
	// Keys come back in the field order json.Marshal produces for maps.
	passert.Equals(s, got,
		`{"count":2,"word":"blue"}`,
		`{"count":1,"word":"green"}`,
	)
	ptest.RunAndValidate(t, p)
}

func TestWriteInvalidRecord(t *testing.T) {
	const filename = "memfs://avroio/invalid.avro"

	p, s := eddy.NewPipelineWithRoot()
	records := eddy.Create(s, `{"word": "blue"}`)
	Write(s, filename, testSchema, records)

	if err := ptest.Run(p); err == nil {
		t.Fatalf("pipeline succeeded, want error for record missing a field")
	}
}

func TestWriteInvalidSchema(t *testing.T) {
	const filename = "memfs://avroio/badschema.avro"

	p, s := eddy.NewPipelineWithRoot()
	records := eddy.Create(s, `{"word": "blue", "count": 2}`)
	Write(s, filename, `{"type": "nope"}`, records)

	if err := ptest.Run(p); err == nil {
		t.Fatalf("pipeline succeeded, want error for invalid schema")
	}
}
