// Package presentation formats parser output for the command line, as JSON
// or as styled text.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rivo/uniseg"
)

// ColorMode selects when output is styled.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (auto, always or never)", s)
}

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer

	enter   lipgloss.Style
	exit    lipgloss.Style
	subtle  lipgloss.Style
	warning lipgloss.Style
	added   lipgloss.Style
	deleted lipgloss.Style
}

// NewFormatter creates a new formatter. Styles follow the color profile of
// writer, so output to a pipe or file is plain.
func NewFormatter(writer io.Writer) *Formatter {
	return NewFormatterWithColor(writer, ColorAuto)
}

// NewFormatterWithColor creates a formatter that styles output according to
// mode instead of detecting the terminal.
func NewFormatterWithColor(writer io.Writer, mode ColorMode) *Formatter {
	r := lipgloss.NewRenderer(writer)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return &Formatter{
		writer:  writer,
		enter:   r.NewStyle().Foreground(lipgloss.Color("2")),
		exit:    r.NewStyle().Foreground(lipgloss.Color("1")),
		subtle:  r.NewStyle().Foreground(lipgloss.Color("8")),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		added:   r.NewStyle().Foreground(lipgloss.Color("2")),
		deleted: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// FormatJSON writes v as indented JSON
func (f *Formatter) FormatJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteEvents writes one event per line, indented by depth:
//
//	+ Paragraph 1:1 (0)
//	  + Data 1:1 (0) text #2
func (f *Formatter) WriteEvents(events []EventDTO) error {
	for _, e := range events {
		edge := f.enter.Render("+")
		if e.Kind == "exit" {
			edge = f.exit.Render("-")
		}
		line := fmt.Sprintf("%s%s %s %s", strings.Repeat("  ", e.Depth), edge, e.Name,
			f.subtle.Render(fmt.Sprintf("%d:%d (%d)", e.Line, e.Column, e.Offset)))
		if e.ContentType != "" {
			line += " " + f.subtle.Render(fmt.Sprintf("%s #%d", e.ContentType, e.Chain))
		}
		if _, err := fmt.Fprintln(f.writer, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteDiagnostics writes diagnostics as `path:line:col: message`, followed
// by the source line and a caret under the bracket when the source is known:
//
//	doc.md:1:3: `[` does not start a link
//	  x [a
//	    ^
func (f *Formatter) WriteDiagnostics(diags []DiagnosticDTO) error {
	for _, d := range diags {
		pos := fmt.Sprintf("%s:%d:%d:", d.Path, d.Line, d.Column)
		out := fmt.Sprintf("%s %s\n", f.subtle.Render(pos), f.warning.Render(d.Message))
		if d.Source != "" && d.Column-1 <= len(d.Source) {
			out += fmt.Sprintf("  %s\n  %s%s\n", d.Source, caretPadding(d.Source[:d.Column-1]), f.warning.Render("^"))
		}
		if _, err := io.WriteString(f.writer, out); err != nil {
			return err
		}
	}
	return nil
}

// caretPadding returns whitespace as wide on screen as prefix. Tabs are
// kept so the caret lines up whatever the tab width.
func caretPadding(prefix string) string {
	var b strings.Builder
	g := uniseg.NewGraphemes(prefix)
	for g.Next() {
		if g.Str() == "\t" {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", g.Width()))
	}
	return b.String()
}
