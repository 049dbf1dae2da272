package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclements/quickfilter/config"
	qerrors "github.com/aclements/quickfilter/internal/errors"
	"github.com/aclements/quickfilter/internal/persistence"
	"github.com/aclements/quickfilter/model"
	"github.com/aclements/quickfilter/services"
	"github.com/aclements/quickfilter/store"
)

func projectionOf(attr string) func(model.Object) []string {
	return func(obj model.Object) []string { return obj.StringValues(attr) }
}

func shopObjects() []model.Object {
	return []model.Object{
		{"color": "red", "size": "s", "title": "Red Shirt"},
		{"color": "red", "size": "m", "title": "Red Shirts Extra"},
		{"color": "blue", "size": "s", "title": "Blue Jeans"},
		{"color": "green", "size": "l", "title": "Green Hat"},
	}
}

func shopFacets() []config.FacetConfig {
	return []config.FacetConfig{
		{Name: "color", Type: config.FacetCategorical, Attribute: "color"},
		{Name: "size", Type: config.FacetCategorical, Attribute: "size"},
		{Name: "search", Type: config.FacetFreeText, Attribute: "title"},
	}
}

func newShopSession(t *testing.T, stateStore services.StateStore) *Session {
	t.Helper()
	sess, err := New(store.NewCollection(shopObjects()), shopFacets(), stateStore)
	require.NoError(t, err)
	return sess
}

func facetView(t *testing.T, views []services.FacetView, name string) services.FacetView {
	t.Helper()
	for _, v := range views {
		if v.Name == name {
			return v
		}
	}
	t.Fatalf("facet %q not found in views", name)
	return services.FacetView{}
}

func valueIndex(t *testing.T, view services.FacetView, value string) int {
	t.Helper()
	for i, vv := range view.Values {
		if vv.Value == value {
			return i
		}
	}
	t.Fatalf("value %q not found in facet %q", value, view.Name)
	return -1
}

func TestNewValidation(t *testing.T) {
	t.Run("duplicate facet names fail fast", func(t *testing.T) {
		configs := []config.FacetConfig{
			{Name: "color", Attribute: "color"},
			{Name: "color", Attribute: "color"},
		}
		_, err := New(store.NewCollection(shopObjects()), configs, nil)
		require.ErrorIs(t, err, qerrors.ErrDuplicateFacet)
	})

	t.Run("missing projection fails fast", func(t *testing.T) {
		configs := []config.FacetConfig{{Name: "color"}}
		_, err := New(store.NewCollection(shopObjects()), configs, nil)
		require.ErrorIs(t, err, qerrors.ErrInvalidInput)
	})

	t.Run("nil collection fails fast", func(t *testing.T) {
		_, err := New(nil, shopFacets(), nil)
		require.Error(t, err)
	})

	t.Run("empty collection is fine", func(t *testing.T) {
		sess, err := New(store.NewCollection(nil), shopFacets(), nil)
		require.NoError(t, err)
		assert.Empty(t, sess.Refresh().Matched)
	})
}

func TestRefreshInitialFlag(t *testing.T) {
	sess := newShopSession(t, nil)

	assert.True(t, sess.Refresh().Initial, "first refresh must be flagged initial")
	assert.False(t, sess.Refresh().Initial, "subsequent refreshes are incremental")
}

func TestSelectionNarrowsResults(t *testing.T) {
	sess := newShopSession(t, nil)
	first := sess.Refresh()
	assert.Equal(t, []bool{true, true, true, true}, first.Matched)

	colorView := facetView(t, first.Facets, "color")
	require.NoError(t, sess.SetSelected("color", valueIndex(t, colorView, "red"), true))

	result := sess.Refresh()
	assert.Equal(t, []bool{true, true, false, false}, result.Matched)

	// Other colors stay viable (single-miss on color), sizes narrow to
	// those of red objects.
	colorView = facetView(t, result.Facets, "color")
	assert.False(t, colorView.PassAll)
	for _, vv := range colorView.Values {
		assert.True(t, vv.Viable, "color %q", vv.Value)
	}

	sizeView := facetView(t, result.Facets, "size")
	assert.True(t, sizeView.PassAll)
	wantViable := map[string]bool{"s": true, "m": true, "l": false}
	for _, vv := range sizeView.Values {
		assert.Equal(t, wantViable[vv.Value], vv.Viable, "size %q", vv.Value)
	}
}

func TestQueryAndSelectionCombine(t *testing.T) {
	sess := newShopSession(t, nil)
	first := sess.Refresh()

	colorView := facetView(t, first.Facets, "color")
	require.NoError(t, sess.SetSelected("color", valueIndex(t, colorView, "red"), true))
	require.NoError(t, sess.SetQuery("search", "extra "))

	result := sess.Refresh()
	assert.Equal(t, []bool{false, true, false, false}, result.Matched)

	searchView := facetView(t, result.Facets, "search")
	assert.Equal(t, "extra ", searchView.Query)
	assert.False(t, searchView.PassAll)
}

func TestMutationErrors(t *testing.T) {
	sess := newShopSession(t, nil)
	sess.Refresh()

	assert.ErrorIs(t, sess.SetSelected("nope", 0, true), qerrors.ErrFacetNotFound)
	assert.ErrorIs(t, sess.SetQuery("nope", "x"), qerrors.ErrFacetNotFound)
	assert.ErrorIs(t, sess.SetSelected("search", 0, true), qerrors.ErrFacetKindMismatch)
	assert.ErrorIs(t, sess.SetQuery("color", "x"), qerrors.ErrFacetKindMismatch)
	assert.ErrorIs(t, sess.SetSelected("color", 99, true), qerrors.ErrInvalidInput)
}

func TestStatePersistsAcrossSessions(t *testing.T) {
	stateStore := &persistence.MemoryStore{}

	sess := newShopSession(t, stateStore)
	first := sess.Refresh()
	colorView := facetView(t, first.Facets, "color")
	require.NoError(t, sess.SetSelected("color", valueIndex(t, colorView, "blue"), true))
	require.NoError(t, sess.SetQuery("search", "blue je"))
	sess.Refresh()

	// A new session over the same store picks up selection and query.
	restored := newShopSession(t, stateStore)
	result := restored.Refresh()

	colorView = facetView(t, result.Facets, "color")
	assert.True(t, colorView.Values[valueIndex(t, colorView, "blue")].Selected)
	assert.Equal(t, "blue je", facetView(t, result.Facets, "search").Query)
	assert.Equal(t, []bool{false, false, true, false}, result.Matched)
}

func TestMalformedSavedStateFallsBack(t *testing.T) {
	for _, blob := range []string{
		"not json at all",
		`{"color": [1,2,3], "search": {"bad": "shape"}, "ghost": {}}`,
		`{"color": {"purple": true}}`,
	} {
		stateStore := &persistence.MemoryStore{}
		stateStore.Save(blob)

		sess := newShopSession(t, stateStore)
		result := sess.Refresh()
		assert.Equal(t, []bool{true, true, true, true}, result.Matched,
			"blob %q must degrade to pass-all defaults", blob)
	}
}

type recordingConsumer struct {
	calls   int
	objects []model.Object
	last    services.RefreshResult
}

func (r *recordingConsumer) Consume(objects []model.Object, result services.RefreshResult) {
	r.calls++
	r.objects = objects
	r.last = result
}

func TestConsumerNotification(t *testing.T) {
	sess := newShopSession(t, nil)
	consumer := &recordingConsumer{}
	sess.SetConsumer(consumer)

	result := sess.Refresh()

	assert.Equal(t, 1, consumer.calls)
	assert.Len(t, consumer.objects, 4)
	assert.Equal(t, result, consumer.last)
}
