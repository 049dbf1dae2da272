package filter

import (
	"encoding/json"
	"strings"

	"github.com/aclements/quickfilter/internal/tokenizer"
	"github.com/aclements/quickfilter/model"
)

// tokenDelimiter separates tokens inside an index string. Every index
// string also carries one trailing delimiter, so a completed query token
// probes as "token " while the in-progress prefix token probes bare.
const tokenDelimiter = " "

// FreeText filters objects on a typed query string. The query is an
// implicit AND of its tokens: completed words must occur as delimited index
// tokens, the in-progress final word matches any index token it is a prefix
// of.
type FreeText struct {
	name    string
	objects []model.Object
	project func(model.Object) []string
	query   string

	// indexStrings is built lazily on the first non-trivial query and
	// never invalidated: objects are static for the filter's lifetime.
	indexStrings []string
}

// NewFreeText creates a free-text filter with the given initial query. The
// search index is deferred until a query actually needs it.
func NewFreeText(name string, objects []model.Object, project func(model.Object) []string, initialQuery string) *FreeText {
	return &FreeText{
		name:    name,
		objects: objects,
		project: project,
		query:   initialQuery,
	}
}

// Name implements Filter.
func (f *FreeText) Name() string { return f.name }

// Query returns the current raw query string.
func (f *FreeText) Query() string { return f.query }

// SetQuery replaces the current query string.
func (f *FreeText) SetQuery(query string) { f.query = query }

// PassAll reports whether the current query tokenizes to nothing.
func (f *FreeText) PassAll() bool {
	return len(tokenizer.Tokenize(f.query).Tokens) == 0
}

// MakePredicate implements Filter. A query with zero tokens passes every
// object; otherwise each query token becomes a probe string that must occur
// as a substring of the object's index string.
func (f *FreeText) MakePredicate() Predicate {
	parsed := tokenizer.Tokenize(f.query)
	if len(parsed.Tokens) == 0 {
		return matchAll
	}

	f.buildIndex()

	probes := make([]string, len(parsed.Tokens))
	for i, token := range parsed.Tokens {
		if token == parsed.Prefix {
			probes[i] = token
		} else {
			probes[i] = token + tokenDelimiter
		}
	}

	indexStrings := f.indexStrings
	return func(i int) bool {
		for _, probe := range probes {
			if !strings.Contains(indexStrings[i], probe) {
				return false
			}
		}
		return true
	}
}

// buildIndex materializes each object's index string: its deduplicated
// tokens joined with the delimiter, plus a trailing delimiter. Built at
// most once per filter instance.
func (f *FreeText) buildIndex() {
	if f.indexStrings != nil {
		return
	}
	f.indexStrings = make([]string, len(f.objects))
	for i, obj := range f.objects {
		text := strings.Join(f.project(obj), tokenDelimiter)
		tokens := tokenizer.Tokenize(text).Tokens
		if len(tokens) == 0 {
			continue
		}
		f.indexStrings[i] = strings.Join(tokens, tokenDelimiter) + tokenDelimiter
	}
}

// Refresh implements Filter. Free text has no viable-value concept.
func (f *FreeText) Refresh([]bool, []int, int) {}

// SaveState implements Filter: the raw query string.
func (f *FreeText) SaveState() json.RawMessage {
	raw, err := json.Marshal(f.query)
	if err != nil {
		return json.RawMessage(`""`)
	}
	return raw
}

// RestoreState implements Filter. Anything but a JSON string keeps the
// configured default query.
func (f *FreeText) RestoreState(raw json.RawMessage) {
	var query string
	if err := json.Unmarshal(raw, &query); err != nil {
		return
	}
	f.query = query
}
