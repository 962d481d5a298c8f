package compiler

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/zjrosen/micromd/internal/config"
	"github.com/zjrosen/micromd/internal/parser"
)

func compile(t *testing.T, input string, opts config.CompileOptions) string {
	t.Helper()
	doc, err := parser.Parse(context.Background(), []byte(input), config.DefaultParseOptions())
	require.NoError(t, err)
	return Compile(context.Background(), doc, opts)
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "blank lines only", input: "\n  \n", expected: ""},
		{name: "resource link", input: "[a](b)", expected: `<p><a href="b">a</a></p>`},
		{name: "unterminated label", input: "[a", expected: "<p>[a</p>"},
		{name: "trailing line ending", input: "a\n", expected: "<p>a</p>\n"},
		{name: "paragraphs", input: "a\n\nb", expected: "<p>a</p>\n<p>b</p>"},
		{name: "soft line ending", input: "a\nb", expected: "<p>a\nb</p>"},
		{name: "trimmed whitespace", input: "  a  \n  b  ", expected: "<p>a<br />\nb</p>"},
		{name: "escape", input: `\[a\]`, expected: "<p>[a]</p>"},
		{name: "encoding", input: `a < b & "c"`, expected: "<p>a &lt; b &amp; &quot;c&quot;</p>"},
		{name: "references", input: "&amp;&copy;&#35;&#x22;&bogus;", expected: "<p>&amp;©#&quot;&amp;bogus;</p>"},
		{name: "title", input: `[a](b "c")`, expected: `<p><a href="b" title="c">a</a></p>`},
		{name: "title with escapes", input: `[a](b "c\"d&amp;")`, expected: `<p><a href="b" title="c&quot;d&amp;">a</a></p>`},
		{name: "empty destination", input: "[a]()", expected: `<p><a href="">a</a></p>`},
		{name: "empty enclosed destination", input: "[a](<>)", expected: `<p><a href="">a</a></p>`},
		{name: "encoded destination", input: "[a](</my uri>)", expected: `<p><a href="/my%20uri">a</a></p>`},
		{name: "kept percent escape", input: "[a](%20%zz)", expected: `<p><a href="%20%25zz">a</a></p>`},
		{name: "non-ascii destination", input: "[a](ö)", expected: `<p><a href="%C3%B6">a</a></p>`},
		{name: "image", input: `![a](b "c")`, expected: `<p><img src="b" alt="a" title="c" /></p>`},
		{name: "image alt is plain", input: "![a [b](c) d](e)", expected: `<p><img src="e" alt="a b d" /></p>`},
		{name: "image in link", input: "[![m](i.png)](/u)", expected: `<p><a href="/u"><img src="i.png" alt="m" /></a></p>`},
		{name: "no links in links", input: "[a [b](c)](d)", expected: `<p>[a <a href="c">b</a>](d)</p>`},
		{name: "shortcut reference", input: "[a]\n\n[a]: /x 'y'", expected: `<p><a href="/x" title="y">a</a></p>`},
		{name: "full reference", input: "[b][A]\n\n[a]: /x", expected: `<p><a href="/x">b</a></p>`},
		{name: "collapsed reference", input: "[a][]\n\n[a]: /x", expected: `<p><a href="/x">a</a></p>`},
		{name: "first definition wins", input: "[a]\n\n[a]: /1\n[a]: /2", expected: `<p><a href="/1">a</a></p>`},
		{name: "definition destination decoded", input: "[a]\n\n[a]: /&ouml;", expected: `<p><a href="/%C3%B6">a</a></p>`},
		{name: "undefined reference", input: "[a][b]", expected: "<p>[a][b]</p>"},
		{name: "hard break escape", input: "a\\\nb", expected: "<p>a<br />\nb</p>"},
		{name: "dangerous protocol dropped", input: "[a](javascript:alert(1))", expected: `<p><a href="">a</a></p>`},
		{name: "safe protocol kept", input: "[a](MAILTO:x@y)", expected: `<p><a href="MAILTO:x@y">a</a></p>`},
		{name: "image protocol", input: "![a](mailto:x@y)", expected: `<p><img src="" alt="a" /></p>`},
		{name: "relative with colon later", input: "[a](/b:c)", expected: `<p><a href="/b:c">a</a></p>`},
		{name: "crlf input", input: "a\r\nb\r\n\r\nc\r\n", expected: "<p>a\nb</p>\n<p>c</p>\n"},
		{name: "lone cr input", input: "a\rb\r\rc\r", expected: "<p>a\nb</p>\n<p>c</p>\n"},
		{name: "hard break before crlf", input: "a  \r\nb", expected: "<p>a<br />\nb</p>"},
		{name: "hard break escape before crlf", input: "a\\\r\nb", expected: "<p>a<br />\nb</p>"},
		{name: "definition before crlf", input: "[a]: b\r\n\r\n[a]", expected: `<p><a href="b">a</a></p>`},
		{name: "no link across crlf blank line", input: "[a\r\n\r\nb](c)", expected: "<p>[a</p>\n<p>b](c)</p>"},
		{name: "link across crlf", input: "[a\r\nb](c)", expected: "<p><a href=\"c\">a\nb</a></p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, compile(t, tt.input, config.Defaults().Compile))
		})
	}
}

func TestCompile_AllowDangerousProtocol(t *testing.T) {
	opts := config.Defaults().Compile
	opts.AllowDangerousProtocol = true
	require.Equal(t, `<p><a href="javascript:alert(1)">a</a></p>`, compile(t, "[a](javascript:alert(1))", opts))
}

func TestCompile_CRLF(t *testing.T) {
	opts := config.Defaults().Compile
	opts.LineEnding = "crlf"
	require.Equal(t, "<p>a\r\nb</p>\r\n<p>c</p>\r\n", compile(t, "a\nb\n\nc\n", opts))
}

// Inputs where the supported subset agrees with CommonMark as goldmark
// implements it.
func TestCompile_MatchesGoldmark(t *testing.T) {
	inputs := []string{
		"[a](b)\n",
		"[a\n",
		"a\nb\n\nc\n",
		"[a]\n\n[a]: /url \"title\"\n",
		"![foo](/url \"title\")\n",
		"[a\\]b](c)\n",
		"&amp; &copy; &#35; &#x22;\n",
		"\\[not a link\\]\n",
		"a  \nb\n",
		"a\\\nb\n",
		"[link](</my uri>)\n",
		"[a]: <b>\n[c][a]\n",
		"[foo][]\n\n[foo]: /url\n",
		"[Foo](/bar\\* \"ti\\*tle\")\n",
		"[![moon](moon.jpg)](/uri)\n",
		"[foo [bar](/uri)](/uri2)\n",
		"[link](/uri 'title')\n",
		"[link](/uri (title))\n",
		"[a](b)[c](d)\n",
		"5 < 6 & 7 > \"4\"\n",
	}

	md := goldmark.New(goldmark.WithRendererOptions(html.WithXHTML()))
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			var want bytes.Buffer
			require.NoError(t, md.Convert([]byte(input), &want))
			require.Equal(t, want.String(), compile(t, input, config.Defaults().Compile))
		})
	}
}
