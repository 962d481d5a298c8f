package presentation

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/micromd/internal/config"
	"github.com/zjrosen/micromd/internal/markdown"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

func events(t *testing.T, input string) []tokenizer.Event {
	events, err := markdown.Events(context.Background(), []byte(input), config.DefaultParseOptions())
	require.NoError(t, err)
	return events
}

func TestFromEvents_Depth(t *testing.T) {
	dtos := FromEvents(events(t, "a"))
	var depths []int
	for _, d := range dtos {
		depths = append(depths, d.Depth)
	}
	require.Equal(t, []int{0, 1, 2, 2, 1, 0}, depths)
	require.Equal(t, "enter", dtos[0].Kind)
	require.Equal(t, "Content", dtos[0].Name)
	require.Equal(t, "exit", dtos[5].Kind)
	require.Equal(t, 1, dtos[5].Offset)
}

func TestWriteEvents_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).WriteEvents(FromEvents(events(t, "a"))))
	require.Equal(t, "+ Content 1:1 (0)\n"+
		"  + Paragraph 1:1 (0)\n"+
		"    + Data 1:1 (0)\n"+
		"    - Data 1:2 (1)\n"+
		"  - Paragraph 1:2 (1)\n"+
		"- Content 1:2 (1)\n", buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).FormatJSON(FromEvents(events(t, "a"))))

	var decoded []EventDTO
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 6)
	require.Equal(t, "Paragraph", decoded[1].Name)
}

func diagnostics(t *testing.T, input string) []DiagnosticDTO {
	diags, err := markdown.Check(context.Background(), []byte(input), config.DefaultParseOptions())
	require.NoError(t, err)
	return FromDiagnostics("doc.md", []byte(input), diags)
}

func TestWriteDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).WriteDiagnostics(diagnostics(t, "x [a")))
	require.Equal(t, "doc.md:1:3: `[` does not start a link\n"+
		"  x [a\n"+
		"    ^\n", buf.String())
}

func TestFromDiagnostics_Source(t *testing.T) {
	for _, input := range []string{"first\nsecond ]\nthird", "first\r\nsecond ]\r\nthird", "first\rsecond ]\rthird"} {
		dtos := diagnostics(t, input)
		require.Len(t, dtos, 1, "%q", input)
		require.Equal(t, "second ]", dtos[0].Source, "%q", input)
		require.Equal(t, 2, dtos[0].Line, "%q", input)
		require.Equal(t, 8, dtos[0].Column, "%q", input)
	}
}

func TestCaretPadding(t *testing.T) {
	require.Equal(t, "", caretPadding(""))
	require.Equal(t, "  ", caretPadding("ab"))
	require.Equal(t, "\t ", caretPadding("\ta"))
	require.Equal(t, "    ", caretPadding("日本"), "wide runes take two cells")
	require.Equal(t, " ", caretPadding("e\u0301"), "a combining mark joins its base")
}

func TestColorModes(t *testing.T) {
	dtos := FromEvents(events(t, "a"))

	var plain, colored bytes.Buffer
	require.NoError(t, NewFormatterWithColor(&plain, ColorNever).WriteEvents(dtos))
	require.NoError(t, NewFormatterWithColor(&colored, ColorAlways).WriteEvents(dtos))

	require.NotContains(t, plain.String(), "\x1b[")
	require.Contains(t, colored.String(), "\x1b[")
	require.Equal(t, plain.String(), ansi.Strip(colored.String()))
}

func TestParseColorMode(t *testing.T) {
	for _, s := range []string{"auto", "always", "never"} {
		m, err := ParseColorMode(s)
		require.NoError(t, err)
		require.Equal(t, ColorMode(s), m)
	}
	_, err := ParseColorMode("sometimes")
	require.Error(t, err)
}

func TestLineDiff(t *testing.T) {
	require.Nil(t, LineDiff("a\nb\n", "a\nb\n"))

	lines := LineDiff("a\nb\nc\n", "a\nx\nc\n")
	require.Equal(t, []DiffLine{
		{Type: LineContext, Text: "a"},
		{Type: LineDeletion, Text: "b"},
		{Type: LineAddition, Text: "x"},
		{Type: LineContext, Text: "c"},
	}, lines)

	var buf bytes.Buffer
	require.NoError(t, NewFormatter(&buf).WriteDiff(lines))
	require.Equal(t, " a\n-b\n+x\n c\n", buf.String())
}
