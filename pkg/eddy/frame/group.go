package frame

import (
	"fmt"
	"strings"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
)

// GroupedFrame is a frame grouped by one or more key columns, ready for an
// aggregation.
type GroupedFrame struct {
	frame *Frame
	keys  []string
	idx   []int
}

// GroupBy groups the frame by the given key columns. Rows are grouped by the
// formatted representation of their key values.
func (f *Frame) GroupBy(keys ...string) (*GroupedFrame, error) {
	if len(keys) == 0 {
		return nil, errors.New("GroupBy requires at least one key column")
	}
	idx := make([]int, len(keys))
	for i, key := range keys {
		pos, err := f.schema.col(key)
		if err != nil {
			return nil, err
		}
		idx[i] = pos
	}
	return &GroupedFrame{frame: f, keys: keys, idx: idx}, nil
}

// Sum aggregates each group, summing the given numeric columns. The resulting
// frame has the key columns followed by the summed columns.
func (g *GroupedFrame) Sum(s eddy.Scope, cols ...string) (*Frame, error) {
	s = s.Scope("frame.Sum")

	if len(cols) == 0 {
		return nil, errors.New("Sum requires at least one column")
	}
	aggIdx := make([]int, len(cols))
	for i, col := range cols {
		pos, err := g.frame.schema.col(col)
		if err != nil {
			return nil, err
		}
		aggIdx[i] = pos
	}

	keyed := eddy.ParDo(s, &groupKeyFn{idx: g.idx}, g.frame.col)
	grouped := eddy.GroupByKey(s, keyed)
	rows := eddy.ParDo(s, &sumRowsFn{keyIdx: g.idx, aggIdx: aggIdx}, grouped)

	return &Frame{schema: derivedSchema(append(append([]string{}, g.keys...), cols...)), col: rows}, nil
}

// Count aggregates each group into a single row holding the key columns and
// the group size under the given column name.
func (g *GroupedFrame) Count(s eddy.Scope, name string) (*Frame, error) {
	s = s.Scope("frame.Count")

	keyed := eddy.ParDo(s, &groupKeyFn{idx: g.idx}, g.frame.col)
	grouped := eddy.GroupByKey(s, keyed)
	rows := eddy.ParDo(s, &countRowsFn{keyIdx: g.idx}, grouped)

	return &Frame{schema: derivedSchema(append(append([]string{}, g.keys...), name)), col: rows}, nil
}

// groupKeyFn keys each row by the formatted representation of its key
// columns.
type groupKeyFn struct {
	idx []int
}

func (f *groupKeyFn) ProcessElement(row Row) (string, Row) {
	parts := make([]string, len(f.idx))
	for i, pos := range f.idx {
		parts[i] = fmt.Sprintf("%v", row[pos])
	}
	return strings.Join(parts, "\x1f"), row
}

type sumRowsFn struct {
	keyIdx []int
	aggIdx []int
}

func (f *sumRowsFn) ProcessElement(_ string, rows func(*Row) bool) (Row, error) {
	var out Row
	var row Row
	for rows(&row) {
		if out == nil {
			out = make(Row, 0, len(f.keyIdx)+len(f.aggIdx))
			for _, pos := range f.keyIdx {
				out = append(out, row[pos])
			}
			for _, pos := range f.aggIdx {
				out = append(out, row[pos])
			}
			continue
		}
		for i, pos := range f.aggIdx {
			sum, err := addValues(out[len(f.keyIdx)+i], row[pos])
			if err != nil {
				return nil, err
			}
			out[len(f.keyIdx)+i] = sum
		}
	}
	return out, nil
}

type countRowsFn struct {
	keyIdx []int
}

func (f *countRowsFn) ProcessElement(_ string, rows func(*Row) bool) Row {
	var out Row
	count := 0
	var row Row
	for rows(&row) {
		if out == nil {
			out = make(Row, 0, len(f.keyIdx)+1)
			for _, pos := range f.keyIdx {
				out = append(out, row[pos])
			}
		}
		count++
	}
	return append(out, count)
}

// addValues adds two numbers of the same type.
func addValues(a, b any) (any, error) {
	switch x := a.(type) {
	case int:
		if y, ok := b.(int); ok {
			return x + y, nil
		}
	case int32:
		if y, ok := b.(int32); ok {
			return x + y, nil
		}
	case int64:
		if y, ok := b.(int64); ok {
			return x + y, nil
		}
	case float32:
		if y, ok := b.(float32); ok {
			return x + y, nil
		}
	case float64:
		if y, ok := b.(float64); ok {
			return x + y, nil
		}
	default:
		return nil, errors.Errorf("sum: unsupported column type %T", a)
	}
	return nil, errors.Errorf("sum: mismatched column types %T and %T", a, b)
}
