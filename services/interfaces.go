// Package services defines the interfaces and result types exchanged
// between the filtering core and its external collaborators (rendering,
// persistence, HTTP surface).
package services

import (
	"github.com/aclements/quickfilter/config"
	"github.com/aclements/quickfilter/model"
)

// StateStore is the opaque string store the session persists filter state
// to, e.g. a file or a hidden form field owned by the caller. Load reports
// false when nothing has been saved yet.
type StateStore interface {
	Load() (string, bool)
	Save(blob string)
}

// ValueView is the per-value display state of a categorical facet.
type ValueView struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
	Viable   bool   `json:"viable"`
}

// FacetView is one facet's per-refresh UI contract. Categorical facets
// carry the value arena and the neutral (pass-all) shading flag; free-text
// facets carry only the raw query.
type FacetView struct {
	Name    string           `json:"name"`
	Type    config.FacetType `json:"type"`
	PassAll bool             `json:"pass_all"`
	Values  []ValueView      `json:"values,omitempty"`
	Query   string           `json:"query,omitempty"`
}

// RefreshResult is the output of one full recomputation pass.
type RefreshResult struct {
	// Matched flags each object of the collection, in collection order.
	Matched []bool `json:"matched"`
	// Initial is true for the first refresh after construction; the
	// renderer may skip transitions for it.
	Initial bool `json:"initial"`
	// Facets holds one view per configured facet, in facet order.
	Facets []FacetView `json:"facets"`
}

// ResultConsumer receives the collection and the refresh result after every
// pass. Implemented by the rendering collaborator.
type ResultConsumer interface {
	Consume(objects []model.Object, result RefreshResult)
}

// SessionAccessor is the per-session operation surface.
type SessionAccessor interface {
	// Refresh runs one full recomputation pass, persists filter state, and
	// returns the result.
	Refresh() RefreshResult
	// SetSelected flips one categorical value, addressed by its arena
	// index within the named facet.
	SetSelected(facet string, valueIndex int, selected bool) error
	// SetQuery replaces the named free-text facet's query string.
	SetQuery(facet string, query string) error
	// Objects returns the session's object collection in input order.
	Objects() []model.Object
	// Facets returns the current per-facet views without recomputing.
	Facets() []FacetView
}

// SessionManager manages the lifecycle of filtering sessions.
type SessionManager interface {
	CreateSession(objects []model.Object, facets []config.FacetConfig) (string, error)
	GetSession(id string) (SessionAccessor, error)
	DeleteSession(id string) error
	ListSessions() []string
}
