// Package config provides configuration structures for the filtering engine.
// It defines facet configurations, their validation rules, and the server
// configuration.
package config

import (
	"strings"

	"github.com/aclements/quickfilter/model"
)

// FacetType selects which filter variant a facet configuration produces.
type FacetType string

const (
	// FacetCategorical filters on an explicit set of chosen values drawn
	// from the facet's discrete value domain.
	FacetCategorical FacetType = "categorical"
	// FacetFreeText filters on a typed query string, tokenized at
	// evaluation time.
	FacetFreeText FacetType = "free_text"
)

// FacetConfig describes one facet: a unique name, a projection from an
// object to its string values, and optional initial selection state.
//
// The projection is either the Attribute shorthand (a named object
// attribute, resolved via model.Object.StringValues) or an arbitrary
// Project function. Exactly one of the two must be set. Project cannot be
// expressed over the wire, so API-created facets always use Attribute.
type FacetConfig struct {
	Name      string    `json:"name"`
	Type      FacetType `json:"type"`
	Attribute string    `json:"attribute,omitempty"`
	Project   func(model.Object) []string `json:"-"`

	// InitialSelection pre-selects categorical values when no saved state
	// overrides them.
	InitialSelection []string `json:"initial_selection,omitempty"`
	// InitialQuery pre-fills the free-text query when no saved state
	// overrides it.
	InitialQuery string `json:"initial_query,omitempty"`
}

// ApplyDefaults fills in zero values: an unset type defaults to categorical.
func (fc *FacetConfig) ApplyDefaults() {
	if fc.Type == "" {
		fc.Type = FacetCategorical
	}
	if fc.InitialSelection == nil {
		fc.InitialSelection = []string{}
	}
}

// Projection resolves the configured projection into a uniform
// Object -> []string function. Returns false when the configuration names
// neither or both of Attribute and Project.
func (fc *FacetConfig) Projection() (func(model.Object) []string, bool) {
	hasAttr := strings.TrimSpace(fc.Attribute) != ""
	if hasAttr == (fc.Project != nil) {
		return nil, false
	}
	if fc.Project != nil {
		return fc.Project, true
	}
	attr := fc.Attribute
	return func(obj model.Object) []string {
		return obj.StringValues(attr)
	}, true
}

// ValidateFacets checks a facet list for configuration conflicts and returns
// human-readable descriptions of every conflict found. An empty result means
// the configuration is usable.
func ValidateFacets(configs []FacetConfig) []string {
	var conflicts []string

	seen := make(map[string]bool)
	for _, fc := range configs {
		if strings.TrimSpace(fc.Name) == "" {
			conflicts = append(conflicts, "Facet name cannot be empty or whitespace-only")
			continue
		}
		if seen[fc.Name] {
			conflicts = append(conflicts, "Duplicate facet name '"+fc.Name+"'")
		}
		seen[fc.Name] = true
	}

	for _, fc := range configs {
		switch fc.Type {
		case FacetCategorical, FacetFreeText, "":
		default:
			conflicts = append(conflicts, "Unknown facet type '"+string(fc.Type)+"' for facet '"+fc.Name+"'")
		}

		if _, ok := fc.Projection(); !ok {
			conflicts = append(conflicts, "Facet '"+fc.Name+"' must set exactly one of attribute or a projection function")
		}

		if fc.Type == FacetFreeText && len(fc.InitialSelection) > 0 {
			conflicts = append(conflicts, "Facet '"+fc.Name+"' is free-text and cannot have an initial selection")
		}
		if fc.Type == FacetCategorical && fc.InitialQuery != "" {
			conflicts = append(conflicts, "Facet '"+fc.Name+"' is categorical and cannot have an initial query")
		}
	}

	return conflicts
}
