package construct

import (
	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// CharacterEscape matches a backslash followed by ASCII punctuation.
func CharacterEscape(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != '\\' || !t.Parse.Options.Constructs.CharacterEscape {
		return tokenizer.Nok
	}
	t.Enter(token.CharacterEscape)
	t.Enter(token.CharacterEscapeMarker)
	t.Consume()
	t.Exit(token.CharacterEscapeMarker)
	return tokenizer.Next(characterEscapeInside)
}

func characterEscapeInside(t *tokenizer.Tokenizer) tokenizer.State {
	if !isASCIIPunctuation(t.Current) {
		return tokenizer.Nok
	}
	t.Enter(token.CharacterEscapeValue)
	t.Consume()
	t.Exit(token.CharacterEscapeValue)
	t.Exit(token.CharacterEscape)
	return tokenizer.Ok
}

// HardBreakEscape matches a backslash right before a line ending. The line
// ending itself is left for the caller.
func HardBreakEscape(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != '\\' || !t.Parse.Options.Constructs.HardBreakEscape {
		return tokenizer.Nok
	}
	t.Enter(token.HardBreakEscape)
	t.Consume()
	return tokenizer.Next(hardBreakEscapeAfter)
}

func hardBreakEscapeAfter(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != tokenizer.LineEnding {
		return tokenizer.Nok
	}
	t.Exit(token.HardBreakEscape)
	return tokenizer.Ok
}
