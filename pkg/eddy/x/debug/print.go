// Package debug contains pipeline components that may help in debugging
// pipeline issues.
package debug

import (
	"context"
	"fmt"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/log"
)

// Print prints out all data. Use with care.
func Print(s eddy.Scope, col eddy.PCollection) eddy.PCollection {
	return Printf(s, "Elm: %v", col)
}

// Printf prints out all data with custom formatting. The given format string
// is used as log.Printf(format, elm) for each element. Use with care.
func Printf(s eddy.Scope, format string, col eddy.PCollection) eddy.PCollection {
	s = s.Scope("debug.Print")

	switch {
	case col.IsKV():
		return eddy.ParDo(s, &printKVFn{Format: format}, col)
	case col.IsGrouped():
		return eddy.ParDo(s, &printGBKFn{Format: format}, col)
	default:
		return eddy.ParDo(s, &printFn{Format: format}, col)
	}
}

type printFn struct {
	Format string
}

func (f *printFn) ProcessElement(ctx context.Context, t any) any {
	log.Infof(ctx, f.Format, t)
	return t
}

type printKVFn struct {
	Format string
}

func (f *printKVFn) ProcessElement(ctx context.Context, x, y any) (any, any) {
	log.Infof(ctx, f.Format, fmt.Sprintf("(%v,%v)", x, y))
	return x, y
}

type printGBKFn struct {
	Format string
}

func (f *printGBKFn) ProcessElement(ctx context.Context, x any, iter func(*any) bool) any {
	var ys []string
	var y any
	for iter(&y) {
		ys = append(ys, fmt.Sprintf("%v", y))
	}
	log.Infof(ctx, f.Format, fmt.Sprintf("(%v,%v)", x, ys))
	return x
}

// Discard is a sink that discards all data.
func Discard(s eddy.Scope, col eddy.PCollection) {
	s = s.Scope("debug.Discard")
	eddy.ParDo0(s, discardFn, col)
}

func discardFn(t any) {
	// nop
}
