// Package filter implements the live, mutable counterpart of a facet
// configuration: the categorical and free-text filter variants, their
// per-object match predicates, and per-value viability bookkeeping.
package filter

import "encoding/json"

// Predicate reports whether the object at the given collection index
// satisfies one filter's current selection state.
type Predicate func(i int) bool

// matchAll is the pass-all predicate shared by every filter in its neutral
// state.
func matchAll(int) bool { return true }

// Filter is one facet's runtime state. Implementations are not safe for
// concurrent use; the session serializes access.
type Filter interface {
	// Name returns the facet name, the join key between saved state and
	// live filters.
	Name() string

	// MakePredicate builds a predicate from the current selection state.
	// A filter with nothing selected (or an empty query) returns a
	// constant-true predicate: pass-all is the neutral default, never
	// "match nothing".
	MakePredicate() Predicate

	// Refresh recomputes derived per-value state from the engine's shared
	// classification arrays. matched[i] is true when object i satisfies
	// every filter; missedBy[i] is the index of the single filter object i
	// fails, or a sentinel when it fails none or more than one. self is
	// this filter's index in the engine's filter order.
	Refresh(matched []bool, missedBy []int, self int)

	// SaveState serializes the current selection state in the filter's
	// facet-local format.
	SaveState() json.RawMessage

	// RestoreState applies previously saved state. Malformed or stale
	// state is tolerated silently: any field that cannot be applied keeps
	// its configured default.
	RestoreState(raw json.RawMessage)
}
