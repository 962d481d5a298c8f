package construct

import (
	"github.com/zjrosen/micromd/internal/identifier"
	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// ReferenceFull matches the `[b]` of `[a][b]`. The label must name a
// definition.
func ReferenceFull(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != '[' {
		return tokenizer.Nok
	}
	s := &t.TokenizeState
	s.Token1 = token.Reference
	s.Token2 = token.ReferenceMarker
	s.Token3 = token.ReferenceString
	start := len(t.Events)
	return t.Attempt(Label, func(ok bool) tokenizer.StateFn {
		return func(t *tokenizer.Tokenizer) tokenizer.State {
			t.TokenizeState.ResetTokens()
			if !ok {
				return tokenizer.Nok
			}
			// Enter Reference, marker pair, then the string.
			from := t.Events[start+3].Point.Index
			to := t.Events[len(t.Events)-4].Point.Index
			if t.Parse.Defined(identifier.Normalize(string(t.Parse.Bytes[from:to]))) {
				return tokenizer.Ok
			}
			return tokenizer.Nok
		}
	})(t)
}

// ReferenceCollapsed matches the `[]` of `[a][]`.
func ReferenceCollapsed(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != '[' {
		return tokenizer.Nok
	}
	t.Enter(token.Reference)
	t.Enter(token.ReferenceMarker)
	t.Consume()
	t.Exit(token.ReferenceMarker)
	return tokenizer.Next(referenceCollapsedOpen)
}

func referenceCollapsedOpen(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != ']' {
		return tokenizer.Nok
	}
	t.Enter(token.ReferenceMarker)
	t.Consume()
	t.Exit(token.ReferenceMarker)
	t.Exit(token.Reference)
	return tokenizer.Ok
}
