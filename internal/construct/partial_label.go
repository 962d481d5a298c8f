package construct

import (
	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// Label matches a bracketed label such as the `[b]` of `[a][b]` or the
// label of a definition:
//
//	label ::= '[' *( label_text | label_escape ) ']'
//	label_text ::= byte - '[' - '\\' - ']'
//	label_escape ::= '\\' [ '[' | '\\' | ']' ]
//
// At most Options.LabelSizeMax bytes are allowed between the brackets. The
// label may span lines but not blank lines, and needs at least one byte
// that is not whitespace or a line ending.
//
// Roles: Token1 wraps the label, Token2 marks each bracket, Token3 wraps the
// text. The text is made of Data runs linked as string content.
func Label(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != '[' {
		return tokenizer.Nok
	}
	s := &t.TokenizeState
	t.Enter(s.Token1)
	t.Enter(s.Token2)
	t.Consume()
	t.Exit(s.Token2)
	t.Enter(s.Token3)
	return tokenizer.Next(labelAtBreak)
}

func labelAtBreak(t *tokenizer.Tokenizer) tokenizer.State {
	s := &t.TokenizeState
	if s.Size > t.Parse.Options.LabelSizeMax ||
		t.Current == tokenizer.EOF ||
		t.Current == '[' ||
		(t.Current == ']' && !s.Seen) {
		return labelNok(t)
	}

	switch t.Current {
	case tokenizer.LineEnding:
		eol := SpaceOrTabEolWith(EolOptions{ContentType: tokenizer.ContentString, Connect: s.Connect})
		return t.Attempt(eol, func(ok bool) tokenizer.StateFn {
			if ok {
				return labelAfterEOL
			}
			return labelNok
		})(t)
	case ']':
		t.Exit(s.Token3)
		t.Enter(s.Token2)
		t.Consume()
		t.Exit(s.Token2)
		t.Exit(s.Token1)
		s.Connect = false
		s.Seen = false
		s.Size = 0
		return tokenizer.Ok
	default:
		t.EnterWithLink(token.Data, tokenizer.ContentString)
		if s.Connect {
			tokenizer.LinkRun(t.Events, len(t.Events)-1)
		} else {
			s.Connect = true
		}
		return labelInside(t)
	}
}

func labelAfterEOL(t *tokenizer.Tokenizer) tokenizer.State {
	t.TokenizeState.Connect = true
	return labelAtBreak(t)
}

func labelNok(t *tokenizer.Tokenizer) tokenizer.State {
	s := &t.TokenizeState
	s.Marker = 0
	s.Connect = false
	s.Seen = false
	s.Size = 0
	return tokenizer.Nok
}

func labelInside(t *tokenizer.Tokenizer) tokenizer.State {
	s := &t.TokenizeState
	switch t.Current {
	case tokenizer.EOF, tokenizer.LineEnding, '[', ']':
		t.Exit(token.Data)
		return labelAtBreak(t)
	}
	if s.Size > t.Parse.Options.LabelSizeMax {
		t.Exit(token.Data)
		return labelAtBreak(t)
	}
	b := t.Current
	t.Consume()
	s.Size++
	if !s.Seen && !isSpaceOrTab(b) {
		s.Seen = true
	}
	if b == '\\' {
		return tokenizer.Next(labelEscape)
	}
	return tokenizer.Next(labelInside)
}

func labelEscape(t *tokenizer.Tokenizer) tokenizer.State {
	switch t.Current {
	case '[', '\\', ']':
		t.Consume()
		t.TokenizeState.Size++
		return tokenizer.Next(labelInside)
	}
	return labelInside(t)
}
