// Package folding canonicalizes Unicode text for accent-insensitive
// matching. Combining marks fold to nothing; lowercase Latin letters whose
// Unicode decomposition reduces to a single ASCII letter fold to that
// letter; every other character passes through unchanged.
package folding

import "strings"

// Fold returns the accent-folded form of s. It is pure and deterministic:
// Fold("café") == "cafe", and a string of bare combining marks folds to "".
func Fold(s string) string {
	// Fast path: pure ASCII never changes.
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isCombiningMark(r) {
			continue
		}
		if letter, ok := asciiEquivalent[r]; ok {
			b.WriteByte(letter)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isCombiningMark reports whether r falls in one of the Unicode combining
// mark blocks stripped by folding.
func isCombiningMark(r rune) bool {
	switch {
	case r >= 0x0300 && r <= 0x036F: // Combining Diacritical Marks
		return true
	case r >= 0x1AB0 && r <= 0x1AFF: // Combining Diacritical Marks Extended
		return true
	case r >= 0x1DC0 && r <= 0x1DFF: // Combining Diacritical Marks Supplement
		return true
	case r >= 0x20D0 && r <= 0x20FF: // Combining Marks for Symbols
		return true
	case r >= 0xFE20 && r <= 0xFE2F: // Combining Half Marks
		return true
	}
	return false
}
