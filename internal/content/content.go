// Package content composes constructs into the grammars of each content
// type: flow (the document), content (definitions and paragraphs), text
// (inline phrasing) and string (escapes and references only).
//
// A grammar maps the byte at the current position to the ordered
// constructs to attempt there, falling back to data.
package content

import (
	"github.com/zjrosen/micromd/internal/construct"
	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// Grammar returns the start state for ct.
func Grammar(ct tokenizer.ContentType) tokenizer.StateFn {
	switch ct {
	case tokenizer.ContentFlow:
		return Flow
	case tokenizer.ContentContent:
		return Content
	case tokenizer.ContentText:
		return Text
	case tokenizer.ContentString:
		return String
	default:
		panic("content: no grammar for " + ct.String())
	}
}

// Flow is the document grammar: blank lines and content.
func Flow(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == tokenizer.EOF {
		return tokenizer.Ok
	}
	return t.Attempt(construct.BlankLine, func(ok bool) tokenizer.StateFn {
		if ok {
			return flowBlankLineAfter
		}
		return flowBeforeContent
	})(t)
}

func flowBlankLineAfter(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == tokenizer.EOF {
		return tokenizer.Ok
	}
	t.Enter(token.BlankLineEnding)
	t.Consume()
	t.Exit(token.BlankLineEnding)
	return tokenizer.Next(Flow)
}

func flowBeforeContent(t *tokenizer.Tokenizer) tokenizer.State {
	return t.AttemptOpt(construct.SpaceOrTab, func(t *tokenizer.Tokenizer) tokenizer.State {
		return t.Go(construct.ContentChunk, flowAfter)(t)
	})(t)
}

func flowAfter(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == tokenizer.EOF {
		return tokenizer.Ok
	}
	t.Enter(token.LineEnding)
	t.Consume()
	t.Exit(token.LineEnding)
	return tokenizer.Next(Flow)
}

// Content is the grammar inside linked content chunks: definitions first,
// then at most one paragraph.
func Content(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == tokenizer.EOF {
		return tokenizer.Ok
	}
	return t.Attempt(construct.Definition, func(ok bool) tokenizer.StateFn {
		if ok {
			return contentDefinitionAfter
		}
		return func(t *tokenizer.Tokenizer) tokenizer.State {
			return t.Go(construct.Paragraph, tokenizer.OkFn)(t)
		}
	})(t)
}

func contentDefinitionAfter(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == tokenizer.EOF {
		return tokenizer.Ok
	}
	t.Enter(token.LineEnding)
	t.Consume()
	t.Exit(token.LineEnding)
	return tokenizer.Next(Content)
}

const (
	textStops   = "!&[\\]"
	stringStops = "&\\"
)

// Text is the phrasing grammar used in paragraphs.
func Text(t *tokenizer.Tokenizer) tokenizer.State {
	t.RegisterResolver("label", construct.ResolveLabel)
	t.RegisterResolver("data", construct.ResolveData)
	t.RegisterResolver("whitespace", construct.ResolveWhitespace(true, true))
	return textStart(t)
}

func textStart(t *tokenizer.Tokenizer) tokenizer.State {
	switch t.Current {
	case tokenizer.EOF:
		return tokenizer.Ok
	case '!':
		return attemptOr(t, textStart, textBeforeData, construct.LabelStartImage)
	case '&':
		return attemptOr(t, textStart, textBeforeData, construct.CharacterReference)
	case '[':
		return attemptOr(t, textStart, textBeforeData, construct.LabelStartLink)
	case '\\':
		return attemptOr(t, textStart, textBeforeData, construct.CharacterEscape, construct.HardBreakEscape)
	case ']':
		return attemptOr(t, textStart, textBeforeData, construct.LabelEnd)
	default:
		return textBeforeData(t)
	}
}

func textBeforeData(t *tokenizer.Tokenizer) tokenizer.State {
	return t.Go(construct.Data(textStops), textStart)(t)
}

// String is the grammar of destinations, titles and labels.
func String(t *tokenizer.Tokenizer) tokenizer.State {
	t.RegisterResolver("data", construct.ResolveData)
	t.RegisterResolver("whitespace", construct.ResolveWhitespace(false, false))
	return stringStart(t)
}

func stringStart(t *tokenizer.Tokenizer) tokenizer.State {
	switch t.Current {
	case tokenizer.EOF:
		return tokenizer.Ok
	case '&':
		return attemptOr(t, stringStart, stringBeforeData, construct.CharacterReference)
	case '\\':
		return attemptOr(t, stringStart, stringBeforeData, construct.CharacterEscape)
	default:
		return stringBeforeData(t)
	}
}

func stringBeforeData(t *tokenizer.Tokenizer) tokenizer.State {
	return t.Go(construct.Data(stringStops), stringStart)(t)
}

// attemptOr tries each construct in order. The first that matches
// continues at restart; when none does, fallback continues at the same
// position.
func attemptOr(t *tokenizer.Tokenizer, restart, fallback tokenizer.StateFn, constructs ...tokenizer.StateFn) tokenizer.State {
	var try func(i int) tokenizer.StateFn
	try = func(i int) tokenizer.StateFn {
		if i == len(constructs) {
			return fallback
		}
		return t.Attempt(constructs[i], func(ok bool) tokenizer.StateFn {
			if ok {
				return restart
			}
			return try(i + 1)
		})
	}
	return try(0)(t)
}
