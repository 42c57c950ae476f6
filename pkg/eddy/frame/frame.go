// Package frame provides a dataframe-style table view over a PCollection of
// record structs: named columns, group-by aggregations and a CSV sink.
//
// A Frame does not change the underlying execution model. Its rows travel
// through the pipeline as ordered value slices, and all operations are
// deferred transforms on the owning pipeline. Collections stay unordered;
// order-sensitive table operations return ErrOrderSensitive.
package frame

import (
	"reflect"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// ErrOrderSensitive is returned by operations whose result depends on element
// order. Collections are unordered, so such operations have no meaningful
// result.
var ErrOrderSensitive = errors.New("collections are unordered: order-sensitive operations are not supported")

// Row is a single table row: one value per schema column, in schema order.
type Row []any

// Field describes a single column of a schema.
type Field struct {
	// Name is the column name.
	Name string

	// index is the source struct field index, or -1 for derived columns.
	index int
}

// Schema describes the columns of a Frame.
type Schema struct {
	fields  []Field
	rowType reflect.Type
}

// Names returns the column names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// col returns the row position of the named column.
func (s *Schema) col(name string) (int, error) {
	for i, f := range s.fields {
		if f.Name == name {
			return i, nil
		}
	}
	return -1, errors.Errorf("no column %q in schema %v", name, s.Names())
}

// schemaOf derives a schema from a record struct type. Exported fields become
// columns, named by their `eddy` tag if present and their field name
// otherwise. Fields tagged `eddy:"-"` are skipped.
func schemaOf(t reflect.Type) (*Schema, error) {
	if t.Kind() != reflect.Struct {
		return nil, errors.Errorf("record type %v must be a struct", t)
	}
	s := &Schema{rowType: t}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("eddy"); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}
		s.fields = append(s.fields, Field{Name: name, index: i})
	}
	if len(s.fields) == 0 {
		return nil, errors.Errorf("record type %v has no columns", t)
	}
	return s, nil
}

// derivedSchema builds a schema for rows produced by an aggregation rather
// than read from a record struct.
func derivedSchema(names []string) *Schema {
	s := &Schema{}
	for _, name := range names {
		s.fields = append(s.fields, Field{Name: name, index: -1})
	}
	return s
}

// Frame is a deferred table: a PCollection<Row> plus the schema describing
// its columns.
type Frame struct {
	schema *Schema
	col    eddy.PCollection
}

// Schema returns the frame's schema.
func (f *Frame) Schema() *Schema {
	return f.schema
}

// Col returns the underlying PCollection<Row>.
func (f *Frame) Col() eddy.PCollection {
	return f.col
}

// ToFrame converts a PCollection of record structs into a Frame. The record
// argument is a zero value of the element type, from which the schema is
// derived.
func ToFrame(s eddy.Scope, col eddy.PCollection, record any) (*Frame, error) {
	s = s.Scope("frame.ToFrame")

	schema, err := schemaOf(reflect.TypeOf(record))
	if err != nil {
		return nil, err
	}
	rows := eddy.ParDo(s, &toRowFn{schema: schema}, col)
	return &Frame{schema: schema, col: rows}, nil
}

type toRowFn struct {
	schema *Schema
}

func (f *toRowFn) ProcessElement(elm any) (Row, error) {
	v := reflect.ValueOf(elm)
	if v.Type() != f.schema.rowType {
		return nil, errors.Errorf("element %v of type %T does not match record type %v", elm, elm, f.schema.rowType)
	}
	row := make(Row, len(f.schema.fields))
	for i, field := range f.schema.fields {
		row[i] = v.Field(field.index).Interface()
	}
	return row, nil
}

// Collection converts the frame back into a PCollection of record structs.
// The record argument is a zero value of the desired element type; its
// columns must match the frame's schema by name.
func (f *Frame) Collection(s eddy.Scope, record any) (eddy.PCollection, error) {
	s = s.Scope("frame.Collection")

	target, err := schemaOf(reflect.TypeOf(record))
	if err != nil {
		return eddy.PCollection{}, err
	}
	// Map each target column to its position in this frame's rows.
	positions := make([]int, len(target.fields))
	for i, field := range target.fields {
		pos, err := f.schema.col(field.Name)
		if err != nil {
			return eddy.PCollection{}, err
		}
		positions[i] = pos
	}
	return eddy.ParDo(s, &fromRowFn{schema: target, positions: positions}, f.col), nil
}

type fromRowFn struct {
	schema    *Schema
	positions []int
}

func (f *fromRowFn) ProcessElement(row Row) (any, error) {
	out := reflect.New(f.schema.rowType).Elem()
	for i, field := range f.schema.fields {
		pos := f.positions[i]
		if pos >= len(row) {
			return nil, errors.Errorf("row %v is too short for schema %v", row, f.schema.Names())
		}
		v := row[pos]
		dst := out.Field(field.index)
		if v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		if !rv.Type().AssignableTo(dst.Type()) {
			return nil, errors.Errorf("column %q value %v of type %T is not assignable to %v", field.Name, v, v, dst.Type())
		}
		dst.Set(rv)
	}
	return out.Interface(), nil
}

// Head would return the first n rows. Collections are unordered, so "first"
// is meaningless and Head always returns ErrOrderSensitive.
func (f *Frame) Head(n int) (*Frame, error) {
	return nil, ErrOrderSensitive
}

// SortBy would sort the frame by the given columns. A sorted result has no
// representation in an unordered collection, so SortBy always returns
// ErrOrderSensitive.
func (f *Frame) SortBy(cols ...string) (*Frame, error) {
	return nil, ErrOrderSensitive
}
