package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "foo", expected: "foo"},
		{name: "ascii case", input: "FoO", expected: "foo"},
		{name: "trims ends", input: "  foo \t", expected: "foo"},
		{name: "collapses inner whitespace", input: "foo \n\t bar", expected: "foo bar"},
		{name: "unicode fold", input: "ΑΓΩ", expected: "αγω"},
		{name: "sharp s folds to ss", input: "ẞ", expected: "ss"},
		{name: "empty", input: " \n ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_SharpSMatchesSS(t *testing.T) {
	assert.Equal(t, Normalize("SS"), Normalize("ẞ"))
}
