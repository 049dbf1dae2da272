// Package session implements the top-level session controller: it owns the
// object collection, the facet filters, and the filter engine, and
// round-trips results to the rendering and persistence collaborators.
package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/aclements/quickfilter/config"
	"github.com/aclements/quickfilter/internal/engine"
	qerrors "github.com/aclements/quickfilter/internal/errors"
	"github.com/aclements/quickfilter/internal/filter"
	"github.com/aclements/quickfilter/internal/persistence"
	"github.com/aclements/quickfilter/model"
	"github.com/aclements/quickfilter/services"
	"github.com/aclements/quickfilter/store"
)

// Session is one filtering session over a fixed collection. All exported
// methods are safe for concurrent use; the engine itself runs one refresh
// at a time to completion.
type Session struct {
	mu        sync.Mutex
	objects   []model.Object
	configs   []config.FacetConfig
	filters   []filter.Filter
	byName    map[string]filter.Filter
	engine    *engine.Engine
	state     services.StateStore
	consumer  services.ResultConsumer
	refreshed bool
}

var _ services.SessionAccessor = (*Session)(nil)

// New builds a session from the collection and facet configurations,
// restoring any previously saved filter state from stateStore. Invalid
// facet configuration is a construction-time contract violation and fails
// fast; a nil stateStore falls back to an in-memory store.
func New(collection *store.Collection, configs []config.FacetConfig, stateStore services.StateStore) (*Session, error) {
	if collection == nil {
		return nil, qerrors.NewValidationError("collection", "cannot be nil")
	}
	seen := make(map[string]bool)
	for _, fc := range configs {
		if seen[fc.Name] {
			return nil, fmt.Errorf("%w: '%s'", qerrors.ErrDuplicateFacet, fc.Name)
		}
		seen[fc.Name] = true
	}
	if conflicts := config.ValidateFacets(configs); len(conflicts) > 0 {
		return nil, qerrors.NewValidationError("facets", strings.Join(conflicts, "; "))
	}
	if stateStore == nil {
		stateStore = &persistence.MemoryStore{}
	}

	objects := collection.Objects
	s := &Session{
		objects: objects,
		configs: make([]config.FacetConfig, len(configs)),
		filters: make([]filter.Filter, 0, len(configs)),
		byName:  make(map[string]filter.Filter, len(configs)),
		state:   stateStore,
	}
	copy(s.configs, configs)

	for i := range s.configs {
		fc := &s.configs[i]
		fc.ApplyDefaults()
		project, _ := fc.Projection() // validated above

		var f filter.Filter
		switch fc.Type {
		case config.FacetFreeText:
			f = filter.NewFreeText(fc.Name, objects, project, fc.InitialQuery)
		default:
			f = filter.NewCategorical(fc.Name, objects, project, fc.InitialSelection)
		}
		s.filters = append(s.filters, f)
		s.byName[fc.Name] = f
	}

	eng, err := engine.New(s.filters, len(objects))
	if err != nil {
		return nil, err
	}
	s.engine = eng

	if blob, ok := stateStore.Load(); ok {
		states := persistence.DecodeState(blob)
		for _, f := range s.filters {
			if raw, present := states[f.Name()]; present {
				f.RestoreState(raw)
			}
		}
	}

	return s, nil
}

// SetConsumer registers the rendering collaborator notified after every
// refresh. Pass nil to detach.
func (s *Session) SetConsumer(consumer services.ResultConsumer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consumer = consumer
}

// Refresh runs one full recomputation pass, persists the current filter
// state, and reports the result. The first refresh after construction is
// flagged as initial.
func (s *Session) Refresh() services.RefreshResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.engine.Refresh()
	initial := !s.refreshed
	s.refreshed = true

	s.persistStateLocked()

	result := services.RefreshResult{
		Matched: matched,
		Initial: initial,
		Facets:  s.facetViewsLocked(),
	}
	if s.consumer != nil {
		s.consumer.Consume(s.objects, result)
	}
	return result
}

// SetSelected flips one categorical value of the named facet, addressed by
// arena index.
func (s *Session) SetSelected(facet string, valueIndex int, selected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.byName[facet]
	if !ok {
		return qerrors.NewFacetNotFoundError(facet)
	}
	c, ok := f.(*filter.Categorical)
	if !ok {
		return qerrors.NewFacetKindMismatchError(facet, "value selection")
	}
	if !c.SetSelected(valueIndex, selected) {
		return qerrors.NewValidationError("value_index",
			fmt.Sprintf("index %d out of range for facet '%s'", valueIndex, facet))
	}
	return nil
}

// SetQuery replaces the named free-text facet's query string.
func (s *Session) SetQuery(facet string, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.byName[facet]
	if !ok {
		return qerrors.NewFacetNotFoundError(facet)
	}
	ft, ok := f.(*filter.FreeText)
	if !ok {
		return qerrors.NewFacetKindMismatchError(facet, "query updates")
	}
	ft.SetQuery(query)
	return nil
}

// Objects returns the collection in input order. Callers must treat it as
// read-only.
func (s *Session) Objects() []model.Object { return s.objects }

// Facets returns the current per-facet views without running a refresh.
// Viability flags reflect the most recent refresh.
func (s *Session) Facets() []services.FacetView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facetViewsLocked()
}

func (s *Session) facetViewsLocked() []services.FacetView {
	views := make([]services.FacetView, len(s.filters))
	for i, f := range s.filters {
		view := services.FacetView{Name: f.Name()}
		switch v := f.(type) {
		case *filter.Categorical:
			view.Type = config.FacetCategorical
			view.PassAll = v.PassAll()
			values := v.Values()
			view.Values = make([]services.ValueView, len(values))
			for j, vs := range values {
				view.Values[j] = services.ValueView{
					Value:    vs.Value,
					Selected: vs.Selected,
					Viable:   vs.Viable,
				}
			}
		case *filter.FreeText:
			view.Type = config.FacetFreeText
			view.PassAll = v.PassAll()
			view.Query = v.Query()
		}
		views[i] = view
	}
	return views
}

func (s *Session) persistStateLocked() {
	states := make(map[string]json.RawMessage, len(s.filters))
	for _, f := range s.filters {
		states[f.Name()] = f.SaveState()
	}
	s.state.Save(persistence.EncodeState(states))
}
