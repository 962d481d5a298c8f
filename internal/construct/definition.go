package construct

import (
	"math"

	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// Definition matches a link reference definition:
//
//	[label]: destination "title"
//
// Whitespace with at most one line ending may separate the parts. When the
// title is followed by anything but whitespace on its line, the definition
// is tried again without it. The line ending after the definition is not
// consumed.
func Definition(t *tokenizer.Tokenizer) tokenizer.State {
	if !t.Parse.Options.Constructs.Definition {
		return tokenizer.Nok
	}
	t.Enter(token.Definition)
	if isSpaceOrTab(t.Current) {
		return t.Go(SpaceOrTab, definitionBefore)(t)
	}
	return definitionBefore(t)
}

func definitionBefore(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != '[' {
		return tokenizer.Nok
	}
	s := &t.TokenizeState
	s.Token1 = token.DefinitionLabel
	s.Token2 = token.DefinitionLabelMarker
	s.Token3 = token.DefinitionLabelString
	return t.Attempt(Label, func(ok bool) tokenizer.StateFn {
		if ok {
			return definitionLabelAfter
		}
		return definitionLabelNok
	})(t)
}

func definitionLabelAfter(t *tokenizer.Tokenizer) tokenizer.State {
	t.TokenizeState.ResetTokens()
	if t.Current != ':' {
		return tokenizer.Nok
	}
	t.Enter(token.DefinitionMarker)
	t.Consume()
	t.Exit(token.DefinitionMarker)
	return tokenizer.Next(definitionMarkerAfter)
}

func definitionLabelNok(t *tokenizer.Tokenizer) tokenizer.State {
	t.TokenizeState.ResetTokens()
	return tokenizer.Nok
}

func definitionMarkerAfter(t *tokenizer.Tokenizer) tokenizer.State {
	return t.AttemptOpt(SpaceOrTabEol, definitionDestinationBefore)(t)
}

func definitionDestinationBefore(t *tokenizer.Tokenizer) tokenizer.State {
	s := &t.TokenizeState
	s.Token1 = token.DefinitionDestination
	s.Token2 = token.DefinitionDestinationLiteral
	s.Token3 = token.DefinitionDestinationLiteralMarker
	s.Token4 = token.DefinitionDestinationRaw
	s.Token5 = token.DefinitionDestinationString
	s.SizeB = math.MaxInt
	return t.Attempt(Destination, func(ok bool) tokenizer.StateFn {
		t.TokenizeState.ResetTokens()
		t.TokenizeState.SizeB = 0
		if ok {
			return definitionDestinationAfter
		}
		return tokenizer.NokFn
	})(t)
}

func definitionDestinationAfter(t *tokenizer.Tokenizer) tokenizer.State {
	return t.AttemptOpt(definitionTitleBefore, definitionAfter)(t)
}

func definitionAfter(t *tokenizer.Tokenizer) tokenizer.State {
	if isSpaceOrTab(t.Current) {
		return t.Go(SpaceOrTab, definitionAfterWhitespace)(t)
	}
	return definitionAfterWhitespace(t)
}

func definitionAfterWhitespace(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != tokenizer.EOF && t.Current != tokenizer.LineEnding {
		return tokenizer.Nok
	}
	t.Exit(token.Definition)
	return tokenizer.Ok
}

func definitionTitleBefore(t *tokenizer.Tokenizer) tokenizer.State {
	if !isSpaceOrTabOrEOL(t.Current) {
		return tokenizer.Nok
	}
	return t.Go(SpaceOrTabEol, definitionTitleBeforeMarker)(t)
}

func definitionTitleBeforeMarker(t *tokenizer.Tokenizer) tokenizer.State {
	s := &t.TokenizeState
	s.Token1 = token.DefinitionTitle
	s.Token2 = token.DefinitionTitleMarker
	s.Token3 = token.DefinitionTitleString
	return t.Attempt(Title, func(ok bool) tokenizer.StateFn {
		t.TokenizeState.ResetTokens()
		if ok {
			return definitionTitleAfter
		}
		return tokenizer.NokFn
	})(t)
}

func definitionTitleAfter(t *tokenizer.Tokenizer) tokenizer.State {
	if isSpaceOrTab(t.Current) {
		return t.Go(SpaceOrTab, definitionTitleAfterWhitespace)(t)
	}
	return definitionTitleAfterWhitespace(t)
}

func definitionTitleAfterWhitespace(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == tokenizer.EOF || t.Current == tokenizer.LineEnding {
		return tokenizer.Ok
	}
	return tokenizer.Nok
}
