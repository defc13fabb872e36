// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Mystery  ", "mystery"},
		{"Science \t  Fiction", "science fiction"},
		{"SCIENCE\nFICTION", "science fiction"},
		{"", ""},
		{"Café", "café"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestIsMatch(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"exact after normalization", "Mystery", "  mystery ", true},
		{"plural via substring", "Mystery", "Mysteries", true},
		{"simple s plural", "Classic", "Classics", true},
		{"typo within distance", "Fantasy", "Fantsay", true},
		{"whitespace collapsed", "Science   Fiction", "science fiction", true},
		{"unrelated genres", "Science Fiction", "Fantasy", false},
		{"substring but too long a difference", "War", "War and Peace", false},
		{"short words differ", "Horror", "Romance", false},
		{"distance exactly three", "abcdef", "abcxyz", true},
		{"distance four", "abcdefg", "abwxyzg", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMatch(tt.a, tt.b))
			assert.Equal(t, tt.want, IsMatch(tt.b, tt.a), "match must be symmetric")
		})
	}
}

func TestFindMatch_ReturnsFirstInOrder(t *testing.T) {
	existing := []string{"Romance", "Mysteries", "Mystery"}

	got, ok := FindMatch("mystery", existing)
	assert.True(t, ok)
	assert.Equal(t, "Mysteries", got, "first matching entry wins, not the closest")

	_, ok = FindMatch("Biography", existing)
	assert.False(t, ok)

	_, ok = FindMatch("anything", nil)
	assert.False(t, ok)
}

func TestFindMatchIndex(t *testing.T) {
	type theme struct{ id, name string }
	themes := []theme{{"t1", "Horror"}, {"t2", "Mysteries"}}

	i := FindMatchIndex("Mystery", len(themes), func(i int) string { return themes[i].name })
	assert.Equal(t, 1, i)

	i = FindMatchIndex("Poetry", len(themes), func(i int) string { return themes[i].name })
	assert.Equal(t, -1, i)
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"café", "cafe", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "Levenshtein(%q, %q)", tt.a, tt.b)
	}
}
