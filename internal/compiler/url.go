package compiler

import (
	"fmt"
	"strings"
)

var (
	safeProtocolHref = []string{"http", "https", "irc", "ircs", "mailto", "xmpp"}
	safeProtocolSrc  = []string{"http", "https"}
)

// encode escapes the characters that are unsafe in HTML text and attribute
// values.
func encode(s string) string {
	if !strings.ContainsAny(s, `&<>"`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// sanitizeURL normalizes url and encodes it for an attribute. Unless
// dangerous is set, a URL whose protocol is not in safe becomes empty.
// URLs without a protocol are relative and always kept.
func sanitizeURL(url string, safe []string, dangerous bool) string {
	url = normalizeURI(url)
	if dangerous {
		return encode(url)
	}
	end := strings.IndexAny(url, "?#/:")
	if end >= 0 && url[end] == ':' {
		protocol := strings.ToLower(url[:end])
		for _, p := range safe {
			if protocol == p {
				return encode(url)
			}
		}
		return ""
	}
	return encode(url)
}

// normalizeURI percent-encodes every byte that may not appear in a URL.
// Existing percent escapes are kept as they are.
func normalizeURI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteString(s[i : i+3])
			i += 2
		case isURLSafe(c):
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isURLSafe(c byte) bool {
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
		return true
	}
	return strings.IndexByte("!#$&'()*+,-./:;=?@_~", c) >= 0
}
