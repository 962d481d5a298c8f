package construct

import (
	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// Resource matches the `(destination "title")` after a label end.
func Resource(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != '(' {
		return tokenizer.Nok
	}
	t.Enter(token.Resource)
	t.Enter(token.ResourceMarker)
	t.Consume()
	t.Exit(token.ResourceMarker)
	return tokenizer.Next(resourceBefore)
}

func resourceBefore(t *tokenizer.Tokenizer) tokenizer.State {
	if isSpaceOrTabOrEOL(t.Current) {
		return t.AttemptOpt(SpaceOrTabEol, resourceOpen)(t)
	}
	return resourceOpen(t)
}

func resourceOpen(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == ')' {
		return resourceEnd(t)
	}
	s := &t.TokenizeState
	s.Token1 = token.ResourceDestination
	s.Token2 = token.ResourceDestinationLiteral
	s.Token3 = token.ResourceDestinationLiteralMarker
	s.Token4 = token.ResourceDestinationRaw
	s.Token5 = token.ResourceDestinationString
	s.SizeB = t.Parse.Options.DestinationBalanceMax
	return t.Attempt(Destination, func(ok bool) tokenizer.StateFn {
		if ok {
			return resourceDestinationAfter
		}
		return resourceDestinationMissing
	})(t)
}

func resourceDestinationAfter(t *tokenizer.Tokenizer) tokenizer.State {
	t.TokenizeState.ResetTokens()
	t.TokenizeState.SizeB = 0
	if isSpaceOrTabOrEOL(t.Current) {
		return t.Attempt(SpaceOrTabEol, func(ok bool) tokenizer.StateFn {
			if ok {
				return resourceBetween
			}
			return resourceEnd
		})(t)
	}
	return resourceEnd(t)
}

func resourceDestinationMissing(t *tokenizer.Tokenizer) tokenizer.State {
	t.TokenizeState.ResetTokens()
	t.TokenizeState.SizeB = 0
	return tokenizer.Nok
}

func resourceBetween(t *tokenizer.Tokenizer) tokenizer.State {
	switch t.Current {
	case '"', '\'', '(':
		s := &t.TokenizeState
		s.Token1 = token.ResourceTitle
		s.Token2 = token.ResourceTitleMarker
		s.Token3 = token.ResourceTitleString
		return t.Attempt(Title, func(ok bool) tokenizer.StateFn {
			if ok {
				return resourceTitleAfter
			}
			return resourceTitleMissing
		})(t)
	}
	return resourceEnd(t)
}

func resourceTitleAfter(t *tokenizer.Tokenizer) tokenizer.State {
	t.TokenizeState.ResetTokens()
	if isSpaceOrTabOrEOL(t.Current) {
		return t.AttemptOpt(SpaceOrTabEol, resourceEnd)(t)
	}
	return resourceEnd(t)
}

func resourceTitleMissing(t *tokenizer.Tokenizer) tokenizer.State {
	t.TokenizeState.ResetTokens()
	return tokenizer.Nok
}

func resourceEnd(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != ')' {
		return tokenizer.Nok
	}
	t.Enter(token.ResourceMarker)
	t.Consume()
	t.Exit(token.ResourceMarker)
	t.Exit(token.Resource)
	return tokenizer.Ok
}
