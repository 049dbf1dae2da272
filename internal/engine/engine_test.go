package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/quickfilter/internal/filter"
	"github.com/aclements/quickfilter/model"
)

func projection(attr string) func(model.Object) []string {
	return func(obj model.Object) []string { return obj.StringValues(attr) }
}

// newScenario builds the canonical four-object scenario: facet A matches
// objects 1 and 2, facet B matches objects 1 and 3, facet C holds a
// distinct value per object and stays neutral. Only object 1 passes
// everything.
func newScenario(t *testing.T) ([]model.Object, *filter.Categorical, *filter.Categorical, *filter.Categorical, *Engine) {
	t.Helper()
	objects := []model.Object{
		{"a": "a1", "b": "b1", "c": "1"},
		{"a": "a1", "b": "b2", "c": "2"},
		{"a": "a2", "b": "b1", "c": "3"},
		{"a": "a2", "b": "b2", "c": "4"},
	}
	fa := filter.NewCategorical("a", objects, projection("a"), []string{"a1"})
	fb := filter.NewCategorical("b", objects, projection("b"), []string{"b1"})
	fc := filter.NewCategorical("c", objects, projection("c"), nil)

	eng, err := New([]filter.Filter{fa, fb, fc}, len(objects))
	require.NoError(t, err)
	return objects, fa, fb, fc, eng
}

func viableValues(f *filter.Categorical) map[string]bool {
	out := make(map[string]bool)
	for _, vs := range f.Values() {
		out[vs.Value] = vs.Viable
	}
	return out
}

func TestRefreshEndToEnd(t *testing.T) {
	_, fa, fb, fc, eng := newScenario(t)

	matched := eng.Refresh()

	// Only object 0 ("object 1" of the scenario) satisfies all filters.
	assert.Equal(t, []bool{true, false, false, false}, matched)

	// A's viable values come from the matched object and the object that
	// single-misses on A; same for B. C sees only the matched object.
	assert.Equal(t, map[string]bool{"a1": true, "a2": true}, viableValues(fa))
	assert.Equal(t, map[string]bool{"b1": true, "b2": true}, viableValues(fb))
	assert.Equal(t, map[string]bool{"1": true, "2": false, "3": false, "4": false}, viableValues(fc))
}

func TestRefreshIntersectionCorrectness(t *testing.T) {
	objects, fa, fb, fc, eng := newScenario(t)

	matched := eng.Refresh()

	preds := []filter.Predicate{fa.MakePredicate(), fb.MakePredicate(), fc.MakePredicate()}
	for i := range objects {
		want := true
		for _, p := range preds {
			want = want && p(i)
		}
		assert.Equal(t, want, matched[i], "object %d", i)
	}
}

func TestRefreshIdempotence(t *testing.T) {
	_, fa, fb, fc, eng := newScenario(t)

	first := eng.Refresh()
	firstViable := []map[string]bool{viableValues(fa), viableValues(fb), viableValues(fc)}

	second := eng.Refresh()
	secondViable := []map[string]bool{viableValues(fa), viableValues(fb), viableValues(fc)}

	assert.Equal(t, first, second)
	assert.Equal(t, firstViable, secondViable)
}

func TestRefreshMultiMissExclusion(t *testing.T) {
	// One object fails both filters; its values must be viable in neither.
	objects := []model.Object{
		{"a": "keep", "b": "keep"},
		{"a": "lost", "b": "lost"},
	}
	fa := filter.NewCategorical("a", objects, projection("a"), []string{"keep"})
	fb := filter.NewCategorical("b", objects, projection("b"), []string{"keep"})
	eng, err := New([]filter.Filter{fa, fb}, len(objects))
	require.NoError(t, err)

	matched := eng.Refresh()

	assert.Equal(t, []bool{true, false}, matched)
	assert.Equal(t, map[string]bool{"keep": true, "lost": false}, viableValues(fa))
	assert.Equal(t, map[string]bool{"keep": true, "lost": false}, viableValues(fb))
}

func TestRefreshPassAllNeutrality(t *testing.T) {
	objects := []model.Object{
		{"a": "x", "q": "alpha beta"},
		{"a": "y", "q": "gamma"},
	}
	fa := filter.NewCategorical("a", objects, projection("a"), nil)
	fq := filter.NewFreeText("q", objects, projection("q"), "   ")
	eng, err := New([]filter.Filter{fa, fq}, len(objects))
	require.NoError(t, err)

	assert.Equal(t, []bool{true, true}, eng.Refresh())
	for _, vs := range fa.Values() {
		assert.True(t, vs.Viable, "value %q", vs.Value)
	}
}

func TestRefreshWithFreeTextAttribution(t *testing.T) {
	// The free-text filter participates in single-miss attribution: an
	// object failing only the query keeps its categorical values viable.
	objects := []model.Object{
		{"color": "red", "title": "summer shirt"},
		{"color": "green", "title": "winter coat"},
	}
	fc := filter.NewCategorical("color", objects, projection("color"), nil)
	fq := filter.NewFreeText("search", objects, projection("title"), "shirt ")
	eng, err := New([]filter.Filter{fc, fq}, len(objects))
	require.NoError(t, err)

	matched := eng.Refresh()

	assert.Equal(t, []bool{true, false}, matched)
	// Object 1's only miss is attributed to the query filter, so the color
	// filter does not count it: selecting "green" would still yield an
	// empty result.
	assert.Equal(t, map[string]bool{"red": true, "green": false}, viableValues(fc))
}

func TestNewRejectsNegativeSize(t *testing.T) {
	_, err := New(nil, -1)
	require.Error(t, err)
}
