package tokenizer

import "github.com/zjrosen/micromd/internal/token"

// StateFn is a continuation. It is called with the tokenizer positioned at
// the byte to decide on (t.Current) and returns the outcome.
type StateFn func(t *Tokenizer) State

type outcome int

const (
	outcomeNext outcome = iota
	outcomeOk
	outcomeNok
)

// State is what a StateFn returns: Ok, Nok, or Next with the function to
// call on the following byte.
type State struct {
	outcome outcome
	next    StateFn
}

var (
	// Ok ends a construct successfully.
	Ok = State{outcome: outcomeOk}

	// Nok ends a construct without a match.
	Nok = State{outcome: outcomeNok}
)

// Next asks for the next byte. The function returning it must have consumed
// at least one byte.
func Next(fn StateFn) State {
	return State{outcome: outcomeNext, next: fn}
}

// IsOk reports whether s is Ok.
func (s State) IsOk() bool { return s.outcome == outcomeOk }

// IsNok reports whether s is Nok.
func (s State) IsNok() bool { return s.outcome == outcomeNok }

// NokFn is a StateFn that never matches.
func NokFn(*Tokenizer) State { return Nok }

// OkFn is a StateFn that matches without consuming.
func OkFn(*Tokenizer) State { return Ok }

// TokenizeState is scratch space lent to the active construct. Every
// construct leaves it at its zero value when it returns Ok or Nok.
//
// Token1 to Token5 are role slots bound by the caller of a partial
// construct (label, destination, title), so one state machine serves
// definitions, resources and references.
type TokenizeState struct {
	Marker  byte
	Size    int
	SizeB   int
	Seen    bool
	Connect bool

	Token1 token.Name
	Token2 token.Name
	Token3 token.Name
	Token4 token.Name
	Token5 token.Name
}

// IsZero reports whether every field holds its default.
func (s TokenizeState) IsZero() bool {
	return s == TokenizeState{}
}

// ResetTokens unbinds all role slots.
func (s *TokenizeState) ResetTokens() {
	s.Token1 = token.None
	s.Token2 = token.None
	s.Token3 = token.None
	s.Token4 = token.None
	s.Token5 = token.None
}

// LabelStart records a `[` or `![` that may open a link or image. Start
// holds the indices of its Enter and Exit events.
type LabelStart struct {
	Start    [2]int
	Inactive bool
}

// Media records a matched label start and label end. End holds the index of
// the LabelEnd Enter and of the last event of the media.
type Media struct {
	Start [2]int
	End   [2]int
}
