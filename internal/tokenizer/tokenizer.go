// Package tokenizer drives construct state machines over Markdown input and
// records the result as a flat list of Enter/Exit events.
//
// A construct is a set of StateFn continuations. The engine feeds each byte
// to the held continuation until one returns Ok or Nok. Attempt runs a
// construct speculatively: on Nok every event, position and scratch change
// it made is rolled back.
package tokenizer

import (
	"fmt"
	"slices"

	"github.com/zjrosen/micromd/internal/config"
	"github.com/zjrosen/micromd/internal/token"
)

// EOF is the value of Tokenizer.Current at the end of the input.
const EOF = -1

// LineEnding is the value of Tokenizer.Current at `\n`, `\r\n` or a lone
// `\r`. Consume takes `\r\n` in one step.
const LineEnding = '\n'

// ParseState is shared by the document tokenizer and every child tokenizer
// created for linked chains.
type ParseState struct {
	Bytes       []byte
	Options     config.ParseOptions
	Definitions map[string]struct{}
	chains      int
}

// NewParseState returns the state for parsing bytes with opts.
func NewParseState(bytes []byte, opts config.ParseOptions) *ParseState {
	return &ParseState{
		Bytes:       bytes,
		Options:     opts,
		Definitions: map[string]struct{}{},
	}
}

// Defined reports whether a definition with the normalized identifier id
// exists.
func (p *ParseState) Defined(id string) bool {
	_, ok := p.Definitions[id]
	return ok
}

func (p *ParseState) nextChain() int {
	p.chains++
	return p.chains
}

// Span is a region of the input fed to a tokenizer.
type Span struct {
	Start Point
	End   Point
}

type resolver struct {
	name string
	fn   func(t *Tokenizer)
}

// Tokenizer holds the engine state for one pass over a sequence of spans.
type Tokenizer struct {
	Parse *ParseState

	// Current is the byte at the current point, LineEnding, or EOF.
	Current int

	// Events is append-only while tokenizing; a failed attempt truncates it.
	Events []Event

	TokenizeState TokenizeState

	// Label start bookkeeping. It survives failed attempts on purpose: a
	// label end that fails moves its start to LabelStartsLoose for good.
	LabelStarts      []LabelStart
	LabelStartsLoose []LabelStart
	Media            []Media

	point     Point
	spans     []Span
	span      int
	stack     []token.Name
	resolvers []resolver
}

// New returns a tokenizer over spans of parse.Bytes. Without spans it
// covers the whole input.
func New(parse *ParseState, spans ...Span) *Tokenizer {
	if len(spans) == 0 {
		spans = []Span{{
			Start: Point{Line: 1, Column: 1, Index: 0},
			End:   Point{Index: len(parse.Bytes)},
		}}
	}
	t := &Tokenizer{
		Parse: parse,
		point: spans[0].Start,
		spans: spans,
	}
	t.refresh()
	return t
}

// Point returns the current point.
func (t *Tokenizer) Point() Point {
	return t.point
}

// Open returns the name of the innermost open token, or token.None.
func (t *Tokenizer) Open() token.Name {
	if len(t.stack) == 0 {
		return token.None
	}
	return t.stack[len(t.stack)-1]
}

// SliceFrom returns the input between from and the current point.
func (t *Tokenizer) SliceFrom(from Point) []byte {
	return t.Parse.Bytes[from.Index:t.point.Index]
}

// refresh sets Current from the point, looking past the end of the current
// span into the next one.
func (t *Tokenizer) refresh() {
	index, span := t.point.Index, t.span
	for span+1 < len(t.spans) && index >= t.spans[span].End.Index {
		span++
		index = t.spans[span].Start.Index
	}
	if index < t.spans[span].End.Index {
		t.Current = int(t.Parse.Bytes[index])
		if t.Current == '\r' {
			t.Current = LineEnding
		}
	} else {
		t.Current = EOF
	}
}

// settle moves the point to the start of the next span once the current one
// is exhausted. Exits stay at the end of a span; enters and consumes settle.
func (t *Tokenizer) settle() {
	for t.span+1 < len(t.spans) && t.point.Index >= t.spans[t.span].End.Index {
		t.span++
		t.point = t.spans[t.span].Start
	}
}

// Consume adds the current byte to the innermost open token and moves on.
func (t *Tokenizer) Consume() {
	if t.Current == EOF {
		panic("tokenizer: cannot consume at end of input")
	}
	if len(t.stack) == 0 {
		panic(fmt.Sprintf("tokenizer: cannot consume %q outside a token", rune(t.Current)))
	}
	t.settle()
	if t.Current == LineEnding {
		t.point.Index += t.lineEndingWidth()
		t.point.Line++
		t.point.Column = 1
	} else {
		t.point.Index++
		t.point.Column++
	}
	t.refresh()
}

func (t *Tokenizer) lineEndingWidth() int {
	index, end := t.point.Index, t.spans[t.span].End.Index
	if t.Parse.Bytes[index] == '\r' && index+1 < end && t.Parse.Bytes[index+1] == '\n' {
		return 2
	}
	return 1
}

// Enter opens a token.
func (t *Tokenizer) Enter(name token.Name) {
	t.enter(name, nil)
}

// EnterWithLink opens a token that starts a new chain of content type ct.
// Use LinkRun to join it to a previous chain instead.
func (t *Tokenizer) EnterWithLink(name token.Name, ct ContentType) {
	t.enter(name, &Link{Chain: t.Parse.nextChain(), ContentType: ct})
}

func (t *Tokenizer) enter(name token.Name, link *Link) {
	if name == token.None {
		panic("tokenizer: cannot enter an unbound token")
	}
	t.settle()
	t.Events = append(t.Events, Event{Kind: Enter, Name: name, Point: t.point, Link: link})
	t.stack = append(t.stack, name)
}

// Exit closes the innermost open token, which must be name.
func (t *Tokenizer) Exit(name token.Name) {
	if open := t.Open(); open != name || name == token.None {
		panic(fmt.Sprintf("tokenizer: cannot exit %s, innermost open token is %s", name, open))
	}
	t.stack = t.stack[:len(t.stack)-1]
	t.Events = append(t.Events, Event{Kind: Exit, Name: name, Point: t.point})
}

type snapshot struct {
	point     Point
	span      int
	current   int
	events    int
	stack     []token.Name
	state     TokenizeState
	resolvers int
}

func (t *Tokenizer) capture() snapshot {
	return snapshot{
		point:     t.point,
		span:      t.span,
		current:   t.Current,
		events:    len(t.Events),
		stack:     slices.Clone(t.stack),
		state:     t.TokenizeState,
		resolvers: len(t.resolvers),
	}
}

func (t *Tokenizer) restore(s snapshot) {
	t.point = s.point
	t.span = s.span
	t.Current = s.current
	t.Events = t.Events[:s.events]
	t.stack = s.stack
	t.TokenizeState = s.state
	t.resolvers = t.resolvers[:s.resolvers]
}

// Attempt returns a StateFn that runs fn to completion. On Ok the changes
// are kept; on Nok the events, point, open tokens and scratch register are
// restored and resolvers registered by fn are dropped. Either way it
// continues with done(ok).
func (t *Tokenizer) Attempt(fn StateFn, done func(ok bool) StateFn) StateFn {
	return attempt(fn, done, false)
}

// Check is like Attempt but always restores, so it only answers whether fn
// matches here.
func (t *Tokenizer) Check(fn StateFn, done func(ok bool) StateFn) StateFn {
	return attempt(fn, done, true)
}

// AttemptOpt attempts fn and continues with next whether it matched or not.
func (t *Tokenizer) AttemptOpt(fn StateFn, next StateFn) StateFn {
	return attempt(fn, func(bool) StateFn { return next }, false)
}

// Go runs fn without an alternative: on Ok it continues with next, on Nok
// the whole construct fails.
func (t *Tokenizer) Go(fn StateFn, next StateFn) StateFn {
	return attempt(fn, func(ok bool) StateFn {
		if ok {
			return next
		}
		return NokFn
	}, false)
}

func attempt(fn StateFn, done func(ok bool) StateFn, check bool) StateFn {
	return func(t *Tokenizer) State {
		snap := t.capture()
		ok := t.Run(fn)
		if !ok || check {
			t.restore(snap)
		}
		next := done(ok)
		// Hand the continuation back to the driving loop when input was
		// kept, so the call stack does not grow with the input.
		if t.point.Index > snap.point.Index {
			return Next(next)
		}
		return next(t)
	}
}

// Run drives fn until it returns Ok or Nok.
func (t *Tokenizer) Run(fn StateFn) bool {
	for {
		before := t.point.Index
		state := fn(t)
		switch state.outcome {
		case outcomeOk:
			return true
		case outcomeNok:
			return false
		}
		if state.next == nil {
			panic("tokenizer: Next without a continuation")
		}
		if t.point.Index == before {
			panic(fmt.Sprintf("tokenizer: Next returned without consuming at %s", t.point))
		}
		fn = state.next
	}
}

// RegisterResolver adds a resolver, run by Resolve after tokenizing.
// Registering the same name twice keeps the first registration.
func (t *Tokenizer) RegisterResolver(name string, fn func(t *Tokenizer)) {
	for _, r := range t.resolvers {
		if r.name == name {
			return
		}
	}
	t.resolvers = append(t.resolvers, resolver{name: name, fn: fn})
}

// Resolve runs the registered resolvers in registration order.
func (t *Tokenizer) Resolve() {
	resolvers := t.resolvers
	t.resolvers = nil
	for _, r := range resolvers {
		r.fn(t)
	}
}

// Tokenize runs start, which must accept all of the input, then resolves.
func (t *Tokenizer) Tokenize(start StateFn) []Event {
	if !t.Run(start) {
		panic("tokenizer: top-level grammar did not match")
	}
	if t.Current != EOF {
		panic(fmt.Sprintf("tokenizer: input left at %s", t.point))
	}
	if len(t.stack) != 0 {
		panic(fmt.Sprintf("tokenizer: unclosed tokens %v", t.stack))
	}
	if !t.TokenizeState.IsZero() {
		panic(fmt.Sprintf("tokenizer: scratch register not reset: %+v", t.TokenizeState))
	}
	t.Resolve()
	return t.Events
}
