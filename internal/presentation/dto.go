package presentation

import (
	"bytes"

	"github.com/zjrosen/micromd/internal/markdown"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// EventDTO represents one event for presentation
type EventDTO struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Offset      int    `json:"offset"`
	Depth       int    `json:"depth"`
	ContentType string `json:"content_type,omitempty"`
	Chain       int    `json:"chain,omitempty"`
}

// FromEvents converts an event stream to DTOs. Depth is the number of
// tokens open around the event, so an Enter and its Exit share a depth.
func FromEvents(events []tokenizer.Event) []EventDTO {
	dtos := make([]EventDTO, len(events))
	depth := 0
	for i, e := range events {
		if e.Kind == tokenizer.Exit {
			depth--
		}
		dto := EventDTO{
			Kind:   e.Kind.String(),
			Name:   e.Name.String(),
			Line:   e.Point.Line,
			Column: e.Point.Column,
			Offset: e.Point.Index,
			Depth:  depth,
		}
		if e.Link != nil {
			dto.ContentType = e.Link.ContentType.String()
			dto.Chain = e.Link.Chain
		}
		if e.Kind == tokenizer.Enter {
			depth++
		}
		dtos[i] = dto
	}
	return dtos
}

// DiagnosticDTO represents a literal bracket report
type DiagnosticDTO struct {
	Path    string `json:"path"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Offset  int    `json:"offset"`
	Message string `json:"message"`
	Source  string `json:"source"` // the whole line, without its line ending
}

// FromDiagnostics converts diagnostics found in input, read from path.
func FromDiagnostics(path string, input []byte, diags []markdown.Diagnostic) []DiagnosticDTO {
	dtos := make([]DiagnosticDTO, len(diags))
	for i, d := range diags {
		dtos[i] = DiagnosticDTO{
			Path:    path,
			Line:    d.Point.Line,
			Column:  d.Point.Column,
			Offset:  d.Point.Index,
			Message: d.Message,
			Source:  lineAt(input, d.Point.Index),
		}
	}
	return dtos
}

// lineAt returns the line holding index, without its line ending.
func lineAt(input []byte, index int) string {
	start := bytes.LastIndexAny(input[:index], "\r\n") + 1
	end := len(input)
	if n := bytes.IndexAny(input[index:], "\r\n"); n >= 0 {
		end = index + n
	}
	return string(input[start:end])
}
