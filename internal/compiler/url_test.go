package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeURI(t *testing.T) {
	tests := map[string]string{
		"":              "",
		"a b":           "a%20b",
		"%41":           "%41",
		"%4":            "%254",
		"100%":          "100%25",
		"ö":             "%C3%B6",
		"a[b]":          "a%5Bb%5D",
		"?q=1&r=2#frag": "?q=1&r=2#frag",
		"a\\b":          "a%5Cb",
	}
	for in, want := range tests {
		require.Equal(t, want, normalizeURI(in), in)
	}
}

func TestSanitizeURL(t *testing.T) {
	require.Equal(t, "http://a?b=1&amp;c=2", sanitizeURL("http://a?b=1&c=2", safeProtocolHref, false))
	require.Equal(t, "", sanitizeURL("data:x", safeProtocolHref, false))
	require.Equal(t, "", sanitizeURL("irc://x", safeProtocolSrc, false))
	require.Equal(t, "irc://x", sanitizeURL("irc://x", safeProtocolHref, false))
	require.Equal(t, "?a:b", sanitizeURL("?a:b", safeProtocolHref, false))
	require.Equal(t, "data:x", sanitizeURL("data:x", safeProtocolHref, true))
}

func TestEncode(t *testing.T) {
	require.Equal(t, "plain", encode("plain"))
	require.Equal(t, "&lt;a href=&quot;x&quot;&gt;&amp;", encode(`<a href="x">&`))
	require.Equal(t, "'", encode("'"))
}
