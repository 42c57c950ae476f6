// Package passert contains verification transformations for testing pipelines.
// The verifications run inside the pipeline itself: a failed assertion fails
// the transform, and thereby the pipeline run.
package passert

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eddyline/eddy/pkg/eddy"
	"github.com/eddyline/eddy/pkg/eddy/internal/errors"
	"github.com/eddyline/eddy/pkg/eddy/transforms/filter"
)

// Equals verifies the given collection has the same values as the given
// values, as a multiset. The values can be provided as a single PCollection.
func Equals(s eddy.Scope, col eddy.PCollection, values ...any) eddy.PCollection {
	subScope := s.Scope("passert.Equals")
	if len(values) == 0 {
		return Empty(subScope, col)
	}
	if other, ok := values[0].(eddy.PCollection); ok && len(values) == 1 {
		return equals(subScope, col, other)
	}

	other := eddy.Create(subScope, values...)
	return equals(subScope, col, other)
}

// equals verifies that the actual values match the expected ones. Both
// collections are tagged and merged, so the comparison needs no second input
// to any single DoFn: each value representation carries a +1 for actual and a
// -1 for expected, and any key with an uneven tally is out of place.
func equals(s eddy.Scope, actual, expected eddy.PCollection) eddy.PCollection {
	a := eddy.ParDo(s, &tagFn{Delta: 1}, actual)
	e := eddy.ParDo(s, &tagFn{Delta: -1}, expected)
	all := eddy.Flatten(s, a, e)
	grouped := eddy.GroupByKey(s, all)
	entries := eddy.ParDo(s, tallyFn, grouped)

	keyed := eddy.AddFixedKey(s, entries)
	post := eddy.GroupByKey(s, keyed)
	eddy.ParDo0(s, failIfBadEntriesFn, post)
	return actual
}

type tagFn struct {
	Delta int
}

func (f *tagFn) ProcessElement(elm any) (string, int) {
	return fmt.Sprintf("%v (%T)", elm, elm), f.Delta
}

// diffEntry is the per-value tally of an Equals comparison.
type diffEntry struct {
	Entry    string
	Actual   int
	Expected int
}

func tallyFn(key string, deltas func(*int) bool) diffEntry {
	entry := diffEntry{Entry: key}
	var d int
	for deltas(&d) {
		if d > 0 {
			entry.Actual++
		} else {
			entry.Expected++
		}
	}
	return entry
}

const partSeparator = "========="

// failIfBadEntriesFn checks if any value appeared a different number of times
// in the actual and expected collections, and fails if so. The returned error
// message contains a full list of each unexpected or missing entry.
func failIfBadEntriesFn(_ int, entries func(*diffEntry) bool) error {
	goodCount := 0
	var unexpected, missing []string

	var entry diffEntry
	for entries(&entry) {
		common := entry.Actual
		if entry.Expected < common {
			common = entry.Expected
		}
		goodCount += common
		for i := common; i < entry.Actual; i++ {
			unexpected = append(unexpected, entry.Entry)
		}
		for i := common; i < entry.Expected; i++ {
			missing = append(missing, entry.Entry)
		}
	}
	if len(unexpected)+len(missing) == 0 {
		return nil
	}
	sort.Strings(unexpected)
	sort.Strings(missing)

	outStrings := []string{
		"actual PCollection does not match expected values",
		partSeparator,
		fmt.Sprintf("%d correct entries (present in both)", goodCount),
		partSeparator,
		fmt.Sprintf("%d unexpected entries (present in actual, missing in expected)", len(unexpected)),
	}
	for _, entry := range unexpected {
		outStrings = append(outStrings, "+++", entry)
	}

	outStrings = append(
		outStrings,
		partSeparator,
		fmt.Sprintf("%d missing entries (missing in actual, present in expected)", len(missing)),
	)
	for _, entry := range missing {
		outStrings = append(outStrings, "---", entry)
	}
	return errors.New(strings.Join(outStrings, "\n"))
}

// Empty verifies that the given collection has no values.
func Empty(s eddy.Scope, col eddy.PCollection) eddy.PCollection {
	s = s.Scope("passert.Empty")

	if col.IsKV() {
		col = eddy.ParDo(s, kvReprFn, col)
	}
	keyed := eddy.AddFixedKey(s, col)
	post := eddy.GroupByKey(s, keyed)
	eddy.ParDo0(s, failIfNonEmptyFn, post)
	return col
}

func kvReprFn(k, v any) any {
	return fmt.Sprintf("(%v,%v)", k, v)
}

func failIfNonEmptyFn(_ int, values func(*any) bool) error {
	var elms []string
	var v any
	for values(&v) {
		elms = append(elms, fmt.Sprint(v))
	}
	if len(elms) == 0 {
		return nil
	}
	sort.Strings(elms)
	return errors.Errorf("PCollection contains %v values, want none: %v", len(elms), strings.Join(elms, ", "))
}

// True asserts that all elements satisfy the given predicate.
func True(s eddy.Scope, col eddy.PCollection, fn any) eddy.PCollection {
	s = s.Scope("passert.True")
	Empty(s, filter.Exclude(s, col, fn))
	return col
}

// False asserts that no element satisfies the given predicate.
func False(s eddy.Scope, col eddy.PCollection, fn any) eddy.PCollection {
	s = s.Scope("passert.False")
	Empty(s, filter.Include(s, col, fn))
	return col
}
