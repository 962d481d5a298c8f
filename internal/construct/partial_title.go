package construct

import (
	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// Title matches a link title: `"a"`, `'a'` or `(a)`. Titles may span lines
// but not blank lines.
//
// Roles: Token1 wraps the title, Token2 marks its delimiters, Token3 wraps
// the string. The string is made of Data runs linked as string content.
func Title(t *tokenizer.Tokenizer) tokenizer.State {
	s := &t.TokenizeState
	switch t.Current {
	case '"', '\'':
		s.Marker = byte(t.Current)
	case '(':
		s.Marker = ')'
	default:
		return tokenizer.Nok
	}
	t.Enter(s.Token1)
	t.Enter(s.Token2)
	t.Consume()
	t.Exit(s.Token2)
	return tokenizer.Next(titleBegin)
}

func titleBegin(t *tokenizer.Tokenizer) tokenizer.State {
	s := &t.TokenizeState
	if t.Current == int(s.Marker) {
		t.Enter(s.Token2)
		t.Consume()
		t.Exit(s.Token2)
		t.Exit(s.Token1)
		s.Marker = 0
		s.Connect = false
		return tokenizer.Ok
	}
	t.Enter(s.Token3)
	return titleAtBreak(t)
}

// titleUnescapedOpen reports whether the current byte is a `(` inside a
// parenthesized title, which is not allowed unescaped.
func titleUnescapedOpen(t *tokenizer.Tokenizer) bool {
	return t.TokenizeState.Marker == ')' && t.Current == '('
}

func titleAtBreak(t *tokenizer.Tokenizer) tokenizer.State {
	s := &t.TokenizeState
	switch {
	case t.Current == int(s.Marker):
		t.Exit(s.Token3)
		return titleBegin(t)
	case t.Current == tokenizer.EOF, titleUnescapedOpen(t):
		return titleNok(t)
	case t.Current == tokenizer.LineEnding:
		eol := SpaceOrTabEolWith(EolOptions{ContentType: tokenizer.ContentString, Connect: s.Connect})
		return t.Attempt(eol, func(ok bool) tokenizer.StateFn {
			if ok {
				return titleAfterEOL
			}
			return titleNok
		})(t)
	default:
		t.EnterWithLink(token.Data, tokenizer.ContentString)
		if s.Connect {
			tokenizer.LinkRun(t.Events, len(t.Events)-1)
		} else {
			s.Connect = true
		}
		return titleInside(t)
	}
}

func titleAfterEOL(t *tokenizer.Tokenizer) tokenizer.State {
	t.TokenizeState.Connect = true
	return titleAtBreak(t)
}

func titleNok(t *tokenizer.Tokenizer) tokenizer.State {
	t.TokenizeState.Marker = 0
	t.TokenizeState.Connect = false
	return tokenizer.Nok
}

func titleInside(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == int(t.TokenizeState.Marker) ||
		t.Current == tokenizer.EOF ||
		t.Current == tokenizer.LineEnding ||
		titleUnescapedOpen(t) {
		t.Exit(token.Data)
		return titleAtBreak(t)
	}
	b := t.Current
	t.Consume()
	if b == '\\' {
		return tokenizer.Next(titleEscape)
	}
	return tokenizer.Next(titleInside)
}

func titleEscape(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == int(t.TokenizeState.Marker) || t.Current == '\\' || titleUnescapedOpen(t) {
		t.Consume()
		return tokenizer.Next(titleInside)
	}
	return titleInside(t)
}
