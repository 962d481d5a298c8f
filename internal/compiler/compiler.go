// Package compiler turns a parsed document's events into HTML.
package compiler

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/micromd/internal/charref"
	"github.com/zjrosen/micromd/internal/config"
	"github.com/zjrosen/micromd/internal/identifier"
	"github.com/zjrosen/micromd/internal/log"
	"github.com/zjrosen/micromd/internal/parser"
	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
	"github.com/zjrosen/micromd/internal/tracing"
)

type definition struct {
	destination string
	title       *string
}

type media struct {
	image       bool
	labelID     string
	label       string
	destination *string
	title       *string
	referenceID *string
}

type compiler struct {
	opts   config.CompileOptions
	bytes  []byte
	events []tokenizer.Event

	definitions map[string]definition

	// buffers is a stack; writes go to the top one.
	buffers []*strings.Builder
	blocks  []string

	media []*media

	// altDepth counts open images. Inside one, only plain text is written.
	altDepth int

	// stringDepth counts open string tokens (destinations, titles,
	// reference strings). Inside one, text is written decoded, not encoded.
	stringDepth int

	referenceKind token.Name
}

// Compile returns the HTML for doc.
func Compile(ctx context.Context, doc *parser.Document, opts config.CompileOptions) string {
	_, span := tracing.Tracer().Start(ctx, tracing.SpanCompile)
	defer span.End()

	c := &compiler{
		opts:        opts,
		bytes:       doc.Bytes,
		events:      doc.Events,
		definitions: map[string]definition{},
	}
	c.collectDefinitions()
	c.push()
	for i, e := range c.events {
		if e.Kind == tokenizer.Enter {
			c.enter(i, e)
		} else {
			c.exit(i, e)
		}
	}
	c.pop()

	out := strings.Join(c.blocks, c.opts.LineEndingBytes())
	if len(c.blocks) > 0 && len(doc.Bytes) > 0 && isLineEndingByte(doc.Bytes[len(doc.Bytes)-1]) {
		out += c.opts.LineEndingBytes()
	}

	span.SetAttributes(attribute.Int(tracing.AttrOutputBytes, len(out)))
	log.Debug(log.CatCompiler, "Compiled HTML", "events", len(c.events), "blocks", len(c.blocks), "definitions", len(c.definitions), "bytes", len(out))
	return out
}

// collectDefinitions gathers destinations and titles up front so references
// before their definition resolve.
func (c *compiler) collectDefinitions() {
	for i, e := range c.events {
		if e.Kind != tokenizer.Enter || e.Name != token.Definition {
			continue
		}
		end := tokenizer.MatchingExit(c.events, i)
		var id string
		var def definition
		for j := i; j < end; j++ {
			if c.events[j].Kind != tokenizer.Enter {
				continue
			}
			switch c.events[j].Name {
			case token.DefinitionLabelString:
				id = identifier.Normalize(string(tokenizer.Slice(c.bytes, c.events, j)))
			case token.DefinitionDestinationString:
				def.destination = c.decode(j)
			case token.DefinitionTitleString:
				title := c.decode(j)
				def.title = &title
			}
		}
		if _, ok := c.definitions[id]; !ok {
			c.definitions[id] = def
		}
	}
}

// decode returns the value of the string token entered at index: escapes
// and references resolved, everything else verbatim.
func (c *compiler) decode(index int) string {
	var b strings.Builder
	end := tokenizer.MatchingExit(c.events, index)
	kind := token.None
	for j := index + 1; j < end; j++ {
		e := c.events[j]
		if e.Kind != tokenizer.Enter {
			continue
		}
		switch e.Name {
		case token.Data, token.LineEnding, token.SpaceOrTab, token.CharacterEscapeValue:
			b.Write(tokenizer.Slice(c.bytes, c.events, j))
		case token.CharacterReferenceMarker:
			kind = token.CharacterReferenceMarker
		case token.CharacterReferenceMarkerNumeric, token.CharacterReferenceMarkerHexadecimal:
			kind = e.Name
		case token.CharacterReferenceValue:
			b.WriteString(decodeReference(kind, string(tokenizer.Slice(c.bytes, c.events, j))))
		}
	}
	return b.String()
}

func decodeReference(kind token.Name, value string) string {
	switch kind {
	case token.CharacterReferenceMarkerNumeric:
		return charref.Numeric(value, 10)
	case token.CharacterReferenceMarkerHexadecimal:
		return charref.Numeric(value, 16)
	default:
		s, _ := charref.Named(value)
		return s
	}
}

func (c *compiler) push() {
	c.buffers = append(c.buffers, &strings.Builder{})
}

func (c *compiler) pop() string {
	top := c.buffers[len(c.buffers)-1]
	c.buffers = c.buffers[:len(c.buffers)-1]
	return top.String()
}

func (c *compiler) write(s string) {
	c.buffers[len(c.buffers)-1].WriteString(s)
}

// text writes literal text, encoded unless inside a string token.
func (c *compiler) text(s string) {
	if c.stringDepth > 0 {
		c.write(s)
		return
	}
	c.write(encode(s))
}

func (c *compiler) enter(i int, e tokenizer.Event) {
	switch e.Name {
	case token.Paragraph, token.Definition, token.Reference:
		c.push()
	case token.Resource:
		c.push()
		// `[a]()` and `[a](<>)` link to the empty URL.
		empty := ""
		c.media[len(c.media)-1].destination = &empty
	case token.Link, token.Image:
		c.media = append(c.media, &media{image: e.Name == token.Image})
		if e.Name == token.Image {
			c.altDepth++
		}
	case token.Label:
		c.push()
		raw := tokenizer.Slice(c.bytes, c.events, i)
		prefix := 1
		if c.media[len(c.media)-1].image {
			prefix = 2
		}
		c.media[len(c.media)-1].labelID = identifier.Normalize(string(raw[prefix : len(raw)-1]))
	case token.ResourceDestinationString, token.ResourceTitleString:
		c.push()
		c.stringDepth++
	case token.ReferenceString:
		id := identifier.Normalize(string(tokenizer.Slice(c.bytes, c.events, i)))
		c.media[len(c.media)-1].referenceID = &id
		c.push()
		c.stringDepth++
	case token.CharacterReferenceMarker, token.CharacterReferenceMarkerNumeric, token.CharacterReferenceMarkerHexadecimal:
		c.referenceKind = e.Name
	case token.Data, token.CharacterEscapeValue:
		c.text(string(tokenizer.Slice(c.bytes, c.events, i)))
	case token.CharacterReferenceValue:
		c.text(decodeReference(c.referenceKind, string(tokenizer.Slice(c.bytes, c.events, i))))
	case token.LineEnding:
		if c.stringDepth > 0 {
			c.write("\n")
		} else if len(c.buffers) > 1 {
			c.write(c.opts.LineEndingBytes())
		}
	case token.SpaceOrTab:
		if c.stringDepth > 0 {
			c.write(string(tokenizer.Slice(c.bytes, c.events, i)))
		}
	case token.HardBreakEscape, token.HardBreakTrailing:
		if c.altDepth == 0 {
			c.write("<br />")
		}
	}
}

func (c *compiler) exit(_ int, e tokenizer.Event) {
	switch e.Name {
	case token.Paragraph:
		c.blocks = append(c.blocks, "<p>"+c.pop()+"</p>")
	case token.Definition, token.Resource, token.Reference:
		c.pop()
	case token.Label:
		c.media[len(c.media)-1].label = c.pop()
	case token.ResourceDestinationString:
		c.stringDepth--
		dest := c.pop()
		c.media[len(c.media)-1].destination = &dest
	case token.ResourceTitleString:
		c.stringDepth--
		title := c.pop()
		c.media[len(c.media)-1].title = &title
	case token.ReferenceString:
		c.stringDepth--
		c.pop()
	case token.Link, token.Image:
		m := c.media[len(c.media)-1]
		c.media = c.media[:len(c.media)-1]
		if m.image {
			c.altDepth--
		}
		c.writeMedia(m)
	}
}

func (c *compiler) writeMedia(m *media) {
	var dest string
	var title *string
	if m.destination != nil {
		dest, title = *m.destination, m.title
	} else {
		id := m.labelID
		if m.referenceID != nil {
			id = *m.referenceID
		}
		def := c.definitions[id]
		dest, title = def.destination, def.title
	}

	if c.altDepth > 0 {
		c.write(m.label)
		return
	}

	var b strings.Builder
	if m.image {
		b.WriteString(`<img src="`)
		b.WriteString(sanitizeURL(dest, safeProtocolSrc, c.opts.AllowDangerousProtocol))
		b.WriteString(`" alt="`)
		b.WriteString(m.label)
		b.WriteString(`"`)
	} else {
		b.WriteString(`<a href="`)
		b.WriteString(sanitizeURL(dest, safeProtocolHref, c.opts.AllowDangerousProtocol))
		b.WriteString(`"`)
	}
	if title != nil {
		b.WriteString(` title="`)
		b.WriteString(encode(*title))
		b.WriteString(`"`)
	}
	if m.image {
		b.WriteString(" />")
	} else {
		b.WriteString(">")
		b.WriteString(m.label)
		b.WriteString("</a>")
	}
	c.write(b.String())
}

func isLineEndingByte(b byte) bool {
	return b == '\n' || b == '\r'
}
