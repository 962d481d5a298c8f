package presentation

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType classifies a line of a diff.
type LineType int

const (
	LineContext LineType = iota
	LineDeletion
	LineAddition
)

// DiffLine is one line of a line diff.
type DiffLine struct {
	Type LineType
	Text string
}

// LineDiff compares want and got line by line. It returns nil when they are
// equal.
func LineDiff(want, got string) []DiffLine {
	if want == got {
		return nil
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		lineType := LineContext
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			lineType = LineDeletion
		case diffmatchpatch.DiffInsert:
			lineType = LineAddition
		}
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text == "" {
				continue
			}
			out = append(out, DiffLine{Type: lineType, Text: strings.TrimSuffix(text, "\n")})
		}
	}
	return out
}

// WriteDiff writes lines with `-`, `+` or space prefixes.
func (f *Formatter) WriteDiff(lines []DiffLine) error {
	for _, l := range lines {
		var text string
		switch l.Type {
		case LineDeletion:
			text = f.deleted.Render("-" + l.Text)
		case LineAddition:
			text = f.added.Render("+" + l.Text)
		default:
			text = " " + l.Text
		}
		if _, err := fmt.Fprintln(f.writer, text); err != nil {
			return err
		}
	}
	return nil
}
