// Package charref decodes character references: named (`&amp;`), decimal
// (`&#123;`) and hexadecimal (`&#x7B;`).
package charref

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Size limits for the value between the marker and the `;`.
const (
	NamedSizeMax       = 31
	DecimalSizeMax     = 7
	HexadecimalSizeMax = 6
)

// Named returns the text for the named reference `&name;`. The name must
// match a known HTML entity exactly, including its case.
func Named(name string) (string, bool) {
	if name == "" || len(name) > NamedSizeMax {
		return "", false
	}
	raw := "&" + name + ";"
	decoded := html.UnescapeString(raw)
	// UnescapeString also accepts a known prefix without its semicolon
	// (`&notit;` becomes `¬it;`), which is not a match here.
	if decoded == raw || strings.HasSuffix(decoded, name[len(name)-1:]+";") {
		return "", false
	}
	return decoded, true
}

// Numeric returns the text for a numeric reference value in base 10 or 16.
// Values that are not allowed in HTML decode to U+FFFD.
func Numeric(value string, base int) string {
	code, err := strconv.ParseUint(value, base, 32)
	if err != nil {
		return string(utf8.RuneError)
	}
	r := rune(code)
	switch {
	case r <= 0x08, r == 0x0B, r >= 0x0E && r <= 0x1F, r >= 0x7F && r <= 0x9F:
		return string(utf8.RuneError)
	case !utf8.ValidRune(r):
		return string(utf8.RuneError)
	}
	return string(r)
}
