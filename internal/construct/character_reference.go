package construct

import (
	"github.com/zjrosen/micromd/internal/charref"
	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// CharacterReference matches `&name;`, `&#digits;` or `&#xhex;`. A named
// reference must name a known HTML entity.
//
// Marker holds '&' for named, '#' for decimal and 'x' for hexadecimal
// references while the value is scanned; Size counts value bytes.
func CharacterReference(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != '&' || !t.Parse.Options.Constructs.CharacterReference {
		return tokenizer.Nok
	}
	t.Enter(token.CharacterReference)
	t.Enter(token.CharacterReferenceMarker)
	t.Consume()
	t.Exit(token.CharacterReferenceMarker)
	return tokenizer.Next(characterReferenceOpen)
}

func characterReferenceOpen(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == '#' {
		t.Enter(token.CharacterReferenceMarkerNumeric)
		t.Consume()
		t.Exit(token.CharacterReferenceMarkerNumeric)
		return tokenizer.Next(characterReferenceNumeric)
	}
	t.TokenizeState.Marker = '&'
	t.Enter(token.CharacterReferenceValue)
	return characterReferenceValue(t)
}

func characterReferenceNumeric(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == 'x' || t.Current == 'X' {
		t.Enter(token.CharacterReferenceMarkerHexadecimal)
		t.Consume()
		t.Exit(token.CharacterReferenceMarkerHexadecimal)
		t.Enter(token.CharacterReferenceValue)
		t.TokenizeState.Marker = 'x'
		return tokenizer.Next(characterReferenceValue)
	}
	t.Enter(token.CharacterReferenceValue)
	t.TokenizeState.Marker = '#'
	return characterReferenceValue(t)
}

func characterReferenceValue(t *tokenizer.Tokenizer) tokenizer.State {
	s := &t.TokenizeState
	if t.Current == ';' && s.Size > 0 {
		if s.Marker == '&' {
			name := string(t.SliceFrom(t.Events[len(t.Events)-1].Point))
			if _, known := charref.Named(name); !known {
				return characterReferenceNok(t)
			}
		}
		t.Exit(token.CharacterReferenceValue)
		t.Enter(token.CharacterReferenceMarkerSemi)
		t.Consume()
		t.Exit(token.CharacterReferenceMarkerSemi)
		t.Exit(token.CharacterReference)
		s.Marker = 0
		s.Size = 0
		return tokenizer.Ok
	}

	var limit int
	var test func(int) bool
	switch s.Marker {
	case 'x':
		limit, test = charref.HexadecimalSizeMax, isASCIIHexDigit
	case '#':
		limit, test = charref.DecimalSizeMax, isASCIIDigit
	default:
		limit, test = charref.NamedSizeMax, isASCIIAlphanumeric
	}
	if s.Size < limit && test(t.Current) {
		t.Consume()
		s.Size++
		return tokenizer.Next(characterReferenceValue)
	}
	return characterReferenceNok(t)
}

func characterReferenceNok(t *tokenizer.Tokenizer) tokenizer.State {
	t.TokenizeState.Marker = 0
	t.TokenizeState.Size = 0
	return tokenizer.Nok
}
