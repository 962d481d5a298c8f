package markdown

import (
	"context"
	"fmt"

	"github.com/zjrosen/micromd/internal/config"
	"github.com/zjrosen/micromd/internal/parser"
	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// Diagnostic is a bracket in paragraph text that ended up literal.
type Diagnostic struct {
	Point   tokenizer.Point
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Point.Line, d.Point.Column, d.Message)
}

// Check parses input and reports every `[`, `![` and `]` in paragraph text
// that did not become part of a link or image. Escaped brackets are
// literal on purpose and not reported.
func Check(ctx context.Context, input []byte, opts config.ParseOptions) ([]Diagnostic, error) {
	doc, err := parser.Parse(ctx, input, opts)
	if err != nil {
		return nil, fmt.Errorf("check: %w", err)
	}
	return diagnose(doc), nil
}

func diagnose(doc *parser.Document) []Diagnostic {
	var out []Diagnostic
	paragraph, destination := 0, 0
	for i, e := range doc.Events {
		step := 1
		if e.Kind == tokenizer.Exit {
			step = -1
		}
		switch e.Name {
		case token.Paragraph:
			paragraph += step
			continue
		case token.Resource, token.Reference:
			destination += step
			continue
		}
		if paragraph == 0 || destination > 0 || e.Kind != tokenizer.Enter || e.Name != token.Data {
			continue
		}
		// Data never holds a line ending, so columns advance byte by byte.
		text := tokenizer.Slice(doc.Bytes, doc.Events, i)
		for j := 0; j < len(text); j++ {
			point := e.Point.Shift(j)
			switch {
			case text[j] == '!' && j+1 < len(text) && text[j+1] == '[':
				out = append(out, Diagnostic{Point: point, Message: "`![` does not start an image"})
				j++
			case text[j] == '[':
				out = append(out, Diagnostic{Point: point, Message: "`[` does not start a link"})
			case text[j] == ']':
				out = append(out, Diagnostic{Point: point, Message: "`]` does not end a link or image"})
			}
		}
	}
	return out
}
