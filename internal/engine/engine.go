// Package engine implements the filter engine: one refresh pass classifies
// every object against every filter and feeds the shared classification
// back to each filter for viable-value aggregation.
package engine

import (
	"fmt"

	"github.com/aclements/quickfilter/internal/filter"
)

// missedBy sentinels. Non-negative entries name the single filter an object
// fails.
const (
	// FullMatch marks an object that satisfies every filter.
	FullMatch = -1
	// MultiMiss marks an object that fails two or more filters. Such an
	// object contributes to no filter's viable set, so the engine stops
	// counting at the second failure.
	MultiMiss = -2
)

// Engine orchestrates the filters over a fixed-size object collection.
// It is not safe for concurrent use; the session serializes refreshes.
type Engine struct {
	filters  []filter.Filter
	size     int
	matched  []bool
	missedBy []int
}

// New creates an engine over size objects. Filter order is fixed and
// determines single-miss attribution indexes.
func New(filters []filter.Filter, size int) (*Engine, error) {
	if size < 0 {
		return nil, fmt.Errorf("object count cannot be negative: %d", size)
	}
	return &Engine{
		filters:  filters,
		size:     size,
		matched:  make([]bool, size),
		missedBy: make([]int, size),
	}, nil
}

// Refresh runs one full recomputation pass:
//
//  1. build one predicate per filter,
//  2. classify every object as matched / single-miss(filter) / multi-miss,
//  3. hand the shared classification arrays to every filter so it can
//     recompute its own viable set.
//
// It returns a copy of the matched vector in collection order.
func (e *Engine) Refresh() []bool {
	predicates := make([]filter.Predicate, len(e.filters))
	for i, f := range e.filters {
		predicates[i] = f.MakePredicate()
	}

	for obj := 0; obj < e.size; obj++ {
		attribution := FullMatch
		for fi, pred := range predicates {
			if pred(obj) {
				continue
			}
			if attribution == FullMatch {
				attribution = fi
			} else {
				// Second failure: 0 vs 1 vs >=2 is all the viable-set
				// computation distinguishes, so stop counting.
				attribution = MultiMiss
				break
			}
		}
		e.matched[obj] = attribution == FullMatch
		e.missedBy[obj] = attribution
	}

	for fi, f := range e.filters {
		f.Refresh(e.matched, e.missedBy, fi)
	}

	matched := make([]bool, e.size)
	copy(matched, e.matched)
	return matched
}
