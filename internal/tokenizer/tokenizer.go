// Package tokenizer splits free text into normalized tokens for the
// free-text filter. Input is lowercased and accent-folded before scanning,
// so "Café" and "cafe" tokenize identically.
package tokenizer

import (
	"regexp"
	"strings"

	"github.com/aclements/quickfilter/internal/folding"
)

// wordRegex matches maximal runs of word characters in already lowercased,
// accent-folded text.
var wordRegex = regexp.MustCompile(`[a-z0-9_]+`)

// Result holds the outcome of tokenizing one piece of text.
type Result struct {
	// Tokens is the deduplicated token sequence in first-occurrence order.
	Tokens []string
	// Prefix is the final token when its match ends exactly at the end of
	// the input, meaning the user may still be typing it. Empty otherwise.
	Prefix string
}

// Tokenize lowercases and accent-folds text, then extracts word-character
// runs as tokens. Duplicate tokens are dropped, keeping the first
// occurrence; order only affects output determinism, not matching.
func Tokenize(text string) Result {
	normalized := folding.Fold(strings.ToLower(text))

	matches := wordRegex.FindAllStringIndex(normalized, -1)
	if len(matches) == 0 {
		return Result{Tokens: []string{}}
	}

	tokens := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		token := normalized[m[0]:m[1]]
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}

	result := Result{Tokens: tokens}
	if last := matches[len(matches)-1]; last[1] == len(normalized) {
		result.Prefix = normalized[last[0]:last[1]]
	}
	return result
}
