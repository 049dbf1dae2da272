package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantTokens []string
		wantPrefix string
	}{
		{"empty string", "", []string{}, ""},
		{"whitespace only", "   \t ", []string{}, ""},
		{"single word", "red", []string{"red"}, "red"},
		{"single word trailing space", "red ", []string{"red"}, ""},
		{"two words in-progress", "red sh", []string{"red", "sh"}, "sh"},
		{"two words completed", "red shirt ", []string{"red", "shirt"}, ""},
		{"three words completed", "red shirt extra ", []string{"red", "shirt", "extra"}, ""},
		{"uppercase folded", "Red SHIRT", []string{"red", "shirt"}, "shirt"},
		{"accents folded", "café Noël", []string{"cafe", "noel"}, "noel"},
		{"punctuation splits", "state-of-the-art", []string{"state", "of", "the", "art"}, "art"},
		{"underscore is a word char", "my_var x", []string{"my_var", "x"}, "x"},
		{"digits", "v2 2020", []string{"v2", "2020"}, "2020"},
		{"duplicates dropped first occurrence kept", "red blue red", []string{"red", "blue"}, "red"},
		{"duplicate prefix still reported", "red red", []string{"red"}, "red"},
		{"trailing punctuation clears prefix", "red shirt!", []string{"red", "shirt"}, ""},
		{"only punctuation", "!@#$", []string{}, ""},
		{"non-latin stripped by word scan", "日本 abc", []string{"abc"}, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got.Tokens, tt.wantTokens) {
				t.Errorf("Tokenize(%q).Tokens = %v, want %v", tt.input, got.Tokens, tt.wantTokens)
			}
			if got.Prefix != tt.wantPrefix {
				t.Errorf("Tokenize(%q).Prefix = %q, want %q", tt.input, got.Prefix, tt.wantPrefix)
			}
		})
	}
}
