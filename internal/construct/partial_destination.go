package construct

import (
	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// Destination matches a link destination, either enclosed in angle
// brackets (`<a b>`) or raw (`a(b)c`). A raw destination may hold at most
// SizeB levels of unescaped nested parentheses.
//
// Roles: Token1 wraps the destination, Token2 the enclosed form, Token3
// marks its angle brackets, Token4 the raw form, Token5 the string. The
// string holds one Data run linked as string content.
func Destination(t *tokenizer.Tokenizer) tokenizer.State {
	s := &t.TokenizeState
	switch {
	case t.Current == '<':
		t.Enter(s.Token1)
		t.Enter(s.Token2)
		t.Enter(s.Token3)
		t.Consume()
		t.Exit(s.Token3)
		return tokenizer.Next(destinationEnclosedBefore)
	case t.Current == tokenizer.EOF, t.Current == ' ', t.Current == ')', isASCIIControl(t.Current):
		return tokenizer.Nok
	default:
		t.Enter(s.Token1)
		t.Enter(s.Token4)
		t.Enter(s.Token5)
		t.EnterWithLink(token.Data, tokenizer.ContentString)
		return destinationRaw(t)
	}
}

func destinationEnclosedBefore(t *tokenizer.Tokenizer) tokenizer.State {
	s := &t.TokenizeState
	if t.Current == '>' {
		t.Enter(s.Token3)
		t.Consume()
		t.Exit(s.Token3)
		t.Exit(s.Token2)
		t.Exit(s.Token1)
		return tokenizer.Ok
	}
	t.Enter(s.Token5)
	t.EnterWithLink(token.Data, tokenizer.ContentString)
	return destinationEnclosed(t)
}

func destinationEnclosed(t *tokenizer.Tokenizer) tokenizer.State {
	switch t.Current {
	case tokenizer.EOF, tokenizer.LineEnding, '<':
		return tokenizer.Nok
	case '>':
		t.Exit(token.Data)
		t.Exit(t.TokenizeState.Token5)
		return destinationEnclosedBefore(t)
	case '\\':
		t.Consume()
		return tokenizer.Next(destinationEnclosedEscape)
	default:
		t.Consume()
		return tokenizer.Next(destinationEnclosed)
	}
}

func destinationEnclosedEscape(t *tokenizer.Tokenizer) tokenizer.State {
	switch t.Current {
	case '<', '>', '\\':
		t.Consume()
		return tokenizer.Next(destinationEnclosed)
	}
	return destinationEnclosed(t)
}

func destinationRaw(t *tokenizer.Tokenizer) tokenizer.State {
	s := &t.TokenizeState
	c := t.Current
	switch {
	case s.Size == 0 && (c == tokenizer.EOF || c == ')' || isSpaceOrTabOrEOL(c)):
		t.Exit(token.Data)
		t.Exit(s.Token5)
		t.Exit(s.Token4)
		t.Exit(s.Token1)
		return tokenizer.Ok
	case c == '(' && s.Size < s.SizeB:
		t.Consume()
		s.Size++
		return tokenizer.Next(destinationRaw)
	case c == ')':
		t.Consume()
		s.Size--
		return tokenizer.Next(destinationRaw)
	case c == tokenizer.EOF, c == ' ', c == '(', isASCIIControl(c):
		s.Size = 0
		return tokenizer.Nok
	case c == '\\':
		t.Consume()
		return tokenizer.Next(destinationRawEscape)
	default:
		t.Consume()
		return tokenizer.Next(destinationRaw)
	}
}

func destinationRawEscape(t *tokenizer.Tokenizer) tokenizer.State {
	switch t.Current {
	case '(', ')', '\\':
		t.Consume()
		return tokenizer.Next(destinationRaw)
	}
	return destinationRaw(t)
}
