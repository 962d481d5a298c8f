// Package identifier normalizes definition labels so references can be
// matched against them.
package identifier

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize collapses runs of whitespace and line endings into one space,
// trims the ends and applies Unicode case folding.
func Normalize(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	space := false
	ascii := true
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch c {
		case ' ', '\t', '\n', '\r':
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		if c >= 0x80 {
			ascii = false
		} else if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	if ascii {
		return b.String()
	}
	return cases.Fold().String(b.String())
}
