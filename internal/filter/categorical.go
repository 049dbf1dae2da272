package filter

import (
	"encoding/json"
	"sort"

	"github.com/aclements/quickfilter/model"
)

// ValueState is one row of a categorical filter's value arena: a distinct
// projected value with its current selection and viability flags. External
// input addresses rows by arena index, not by reference.
type ValueState struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
	Viable   bool   `json:"viable"`
}

// Categorical filters objects on an explicit set of chosen values. The
// per-object projection is computed once at construction; objects are
// assumed static for the filter's lifetime.
type Categorical struct {
	name          string
	objectValues  [][]string // cached projection, indexed by object
	values        []ValueState
	valueIndex    map[string]int // value -> arena position
	selectedCount int
}

// NewCategorical projects every object, builds the sorted distinct value
// arena, and pre-selects the initial values (ignoring any that do not occur
// in the collection).
func NewCategorical(name string, objects []model.Object, project func(model.Object) []string, initial []string) *Categorical {
	c := &Categorical{
		name:         name,
		objectValues: make([][]string, len(objects)),
		valueIndex:   make(map[string]int),
	}

	for i, obj := range objects {
		vals := project(obj)
		c.objectValues[i] = vals
		for _, v := range vals {
			if _, seen := c.valueIndex[v]; !seen {
				c.valueIndex[v] = -1 // placeholder until sorted
			}
		}
	}

	distinct := make([]string, 0, len(c.valueIndex))
	for v := range c.valueIndex {
		distinct = append(distinct, v)
	}
	sort.Strings(distinct)

	c.values = make([]ValueState, len(distinct))
	for i, v := range distinct {
		c.values[i] = ValueState{Value: v}
		c.valueIndex[v] = i
	}

	for _, v := range initial {
		if i, ok := c.valueIndex[v]; ok && !c.values[i].Selected {
			c.values[i].Selected = true
			c.selectedCount++
		}
	}

	return c
}

// Name implements Filter.
func (c *Categorical) Name() string { return c.name }

// Values returns a copy of the value arena in display (lexicographic) order.
func (c *Categorical) Values() []ValueState {
	out := make([]ValueState, len(c.values))
	copy(out, c.values)
	return out
}

// Lookup returns the arena index of a value.
func (c *Categorical) Lookup(value string) (int, bool) {
	i, ok := c.valueIndex[value]
	return i, ok
}

// SetSelected flips the selection flag of the value at the given arena
// index. Out-of-range indexes report false.
func (c *Categorical) SetSelected(index int, selected bool) bool {
	if index < 0 || index >= len(c.values) {
		return false
	}
	if c.values[index].Selected != selected {
		c.values[index].Selected = selected
		if selected {
			c.selectedCount++
		} else {
			c.selectedCount--
		}
	}
	return true
}

// PassAll reports whether the filter is in its neutral state: no value
// selected. Selecting every value matches the same objects but is not
// neutral; the renderer shades the two cases differently.
func (c *Categorical) PassAll() bool { return c.selectedCount == 0 }

// MakePredicate implements Filter. The predicate tests non-empty
// intersection between the object's cached value slice and the selected
// set, costing O(values-per-object) with O(1) membership checks.
func (c *Categorical) MakePredicate() Predicate {
	if c.selectedCount == 0 {
		return matchAll
	}
	selected := make(map[string]struct{}, c.selectedCount)
	for _, vs := range c.values {
		if vs.Selected {
			selected[vs.Value] = struct{}{}
		}
	}
	objectValues := c.objectValues
	return func(i int) bool {
		for _, v := range objectValues[i] {
			if _, ok := selected[v]; ok {
				return true
			}
		}
		return false
	}
}

// Refresh implements Filter: a value is viable iff some object holding it is
// fully matched or is a single-miss attributed to this filter. Multi-miss
// objects contribute nothing, since relaxing this filter alone would not
// clear their other failures.
func (c *Categorical) Refresh(matched []bool, missedBy []int, self int) {
	for i := range c.values {
		c.values[i].Viable = false
	}
	for obj, vals := range c.objectValues {
		if !matched[obj] && missedBy[obj] != self {
			continue
		}
		for _, v := range vals {
			c.values[c.valueIndex[v]].Viable = true
		}
	}
}

// SaveState implements Filter: a value -> selected mapping.
func (c *Categorical) SaveState() json.RawMessage {
	state := make(map[string]bool, len(c.values))
	for _, vs := range c.values {
		state[vs.Value] = vs.Selected
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return json.RawMessage("{}")
	}
	return raw
}

// RestoreState implements Filter. Values no longer present in the
// collection are skipped; an unparseable blob leaves the configured
// defaults in place.
func (c *Categorical) RestoreState(raw json.RawMessage) {
	var state map[string]bool
	if err := json.Unmarshal(raw, &state); err != nil {
		return
	}
	for value, selected := range state {
		if i, ok := c.valueIndex[value]; ok {
			c.SetSelected(i, selected)
		}
	}
}
