package filter

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/aclements/quickfilter/model"
)

func colorProjection(obj model.Object) []string {
	return obj.StringValues("color")
}

func newColorObjects() []model.Object {
	return []model.Object{
		{"color": "red"},
		{"color": []string{"blue", "green"}},
		{"color": "blue"},
		{}, // no color at all
	}
}

func TestNewCategoricalValueDomain(t *testing.T) {
	c := NewCategorical("color", newColorObjects(), colorProjection, nil)

	var got []string
	for _, vs := range c.Values() {
		got = append(got, vs.Value)
	}
	want := []string{"blue", "green", "red"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("value domain = %v, want sorted %v", got, want)
	}
	if !c.PassAll() {
		t.Error("new filter without initial selection should be pass-all")
	}
}

func TestCategoricalInitialSelection(t *testing.T) {
	c := NewCategorical("color", newColorObjects(), colorProjection, []string{"red", "stale-value"})

	i, ok := c.Lookup("red")
	if !ok || !c.Values()[i].Selected {
		t.Error("initial selection 'red' not applied")
	}
	if _, ok := c.Lookup("stale-value"); ok {
		t.Error("value absent from the collection must not enter the arena")
	}
	if c.PassAll() {
		t.Error("filter with a selection must not be pass-all")
	}
}

func TestCategoricalPredicate(t *testing.T) {
	objects := newColorObjects()

	t.Run("pass-all matches everything", func(t *testing.T) {
		c := NewCategorical("color", objects, colorProjection, nil)
		pred := c.MakePredicate()
		for i := range objects {
			if !pred(i) {
				t.Errorf("pass-all predicate rejected object %d", i)
			}
		}
	})

	t.Run("selection intersects cached values", func(t *testing.T) {
		c := NewCategorical("color", objects, colorProjection, []string{"blue"})
		pred := c.MakePredicate()
		want := []bool{false, true, true, false}
		for i, w := range want {
			if pred(i) != w {
				t.Errorf("pred(%d) = %v, want %v", i, pred(i), w)
			}
		}
	})

	t.Run("object without values fails any selection", func(t *testing.T) {
		c := NewCategorical("color", objects, colorProjection, []string{"red", "blue", "green"})
		if c.MakePredicate()(3) {
			t.Error("object with no projected values matched a full selection")
		}
	})
}

func TestCategoricalSetSelected(t *testing.T) {
	c := NewCategorical("color", newColorObjects(), colorProjection, nil)

	i, _ := c.Lookup("green")
	if !c.SetSelected(i, true) {
		t.Fatal("SetSelected rejected a valid index")
	}
	if c.PassAll() {
		t.Error("PassAll should be false after a selection")
	}
	// Selecting twice must not double-count.
	c.SetSelected(i, true)
	c.SetSelected(i, false)
	if !c.PassAll() {
		t.Error("PassAll should be true after deselecting the only value")
	}

	if c.SetSelected(-1, true) || c.SetSelected(99, true) {
		t.Error("out-of-range arena index must be rejected")
	}
}

func TestCategoricalRefreshViability(t *testing.T) {
	objects := newColorObjects()
	c := NewCategorical("color", objects, colorProjection, nil)

	// Object 0 matched, object 1 single-missed on this filter (index 2),
	// object 2 single-missed elsewhere, object 3 multi-missed.
	matched := []bool{true, false, false, false}
	missedBy := []int{-1, 2, 0, -2}
	c.Refresh(matched, missedBy, 2)

	viable := make(map[string]bool)
	for _, vs := range c.Values() {
		viable[vs.Value] = vs.Viable
	}
	want := map[string]bool{
		"red":   true,  // held by matched object 0
		"blue":  true,  // held by single-miss-on-self object 1
		"green": true,  // held by single-miss-on-self object 1
	}
	if !reflect.DeepEqual(viable, want) {
		t.Errorf("viable = %v, want %v", viable, want)
	}

	// Attributing object 1's miss to another filter removes blue/green.
	missedBy[1] = 0
	c.Refresh(matched, missedBy, 2)
	for _, vs := range c.Values() {
		if vs.Value != "red" && vs.Viable {
			t.Errorf("value %q viable despite no matched or self-missed holder", vs.Value)
		}
	}
}

func TestCategoricalStateRoundTrip(t *testing.T) {
	c := NewCategorical("color", newColorObjects(), colorProjection, nil)
	i, _ := c.Lookup("blue")
	c.SetSelected(i, true)

	raw := c.SaveState()

	restored := NewCategorical("color", newColorObjects(), colorProjection, nil)
	restored.RestoreState(raw)
	j, _ := restored.Lookup("blue")
	if !restored.Values()[j].Selected {
		t.Error("selection lost across save/restore")
	}
	if restored.PassAll() {
		t.Error("restored filter should not be pass-all")
	}
}

func TestCategoricalRestoreStateTolerance(t *testing.T) {
	tests := []struct {
		name string
		raw  json.RawMessage
	}{
		{"garbage", json.RawMessage(`not json`)},
		{"wrong shape", json.RawMessage(`[1,2,3]`)},
		{"wrong value types", json.RawMessage(`{"red": "yes"}`)},
		{"stale values only", json.RawMessage(`{"gone": true}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCategorical("color", newColorObjects(), colorProjection, nil)
			c.RestoreState(tt.raw)
			if !c.PassAll() {
				t.Errorf("malformed state %q must leave defaults in place", tt.raw)
			}
		})
	}
}
