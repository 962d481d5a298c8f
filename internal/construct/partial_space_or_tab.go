package construct

import (
	"math"

	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// SpaceOrTabOptions configures a run of spaces and tabs.
type SpaceOrTabOptions struct {
	Kind token.Name
	Min  int
	Max  int

	// ContentType, when set, links the run so it is re-tokenized with the
	// surrounding data. Connect joins it to the previous run of the chain.
	ContentType tokenizer.ContentType
	Connect     bool
}

// SpaceOrTab matches one or more spaces or tabs as SpaceOrTab.
func SpaceOrTab(t *tokenizer.Tokenizer) tokenizer.State {
	return SpaceOrTabWith(SpaceOrTabOptions{Kind: token.SpaceOrTab, Min: 1, Max: math.MaxInt})(t)
}

// SpaceOrTabWith returns a construct matching a run of spaces or tabs.
func SpaceOrTabWith(opts SpaceOrTabOptions) tokenizer.StateFn {
	return func(t *tokenizer.Tokenizer) tokenizer.State {
		size := 0
		var inside tokenizer.StateFn
		inside = func(t *tokenizer.Tokenizer) tokenizer.State {
			if size < opts.Max && isSpaceOrTab(t.Current) {
				t.Consume()
				size++
				return tokenizer.Next(inside)
			}
			t.Exit(opts.Kind)
			if size >= opts.Min {
				return tokenizer.Ok
			}
			return tokenizer.Nok
		}

		if opts.Max > 0 && isSpaceOrTab(t.Current) {
			if opts.ContentType != tokenizer.ContentNone {
				t.EnterWithLink(opts.Kind, opts.ContentType)
				if opts.Connect {
					tokenizer.LinkRun(t.Events, len(t.Events)-1)
				}
			} else {
				t.Enter(opts.Kind)
			}
			return inside(t)
		}
		if opts.Min == 0 {
			return tokenizer.Ok
		}
		return tokenizer.Nok
	}
}

// EolOptions configures SpaceOrTabEolWith.
type EolOptions struct {
	ContentType tokenizer.ContentType
	Connect     bool
}

// SpaceOrTabEol matches whitespace with at most one line ending in it. The
// line after the line ending must not be blank.
func SpaceOrTabEol(t *tokenizer.Tokenizer) tokenizer.State {
	return SpaceOrTabEolWith(EolOptions{})(t)
}

// SpaceOrTabEolWith is SpaceOrTabEol with the whitespace and line ending
// linked into a chain of opts.ContentType.
func SpaceOrTabEolWith(opts EolOptions) tokenizer.StateFn {
	return func(t *tokenizer.Tokenizer) tokenizer.State {
		e := &eol{contentType: opts.ContentType, connect: opts.Connect}
		return e.start(t)
	}
}

type eol struct {
	contentType tokenizer.ContentType
	connect     bool
	ok          bool
}

func (e *eol) linked() bool {
	return e.contentType != tokenizer.ContentNone
}

func (e *eol) start(t *tokenizer.Tokenizer) tokenizer.State {
	if !isSpaceOrTab(t.Current) {
		return e.atEOL(t)
	}
	opts := SpaceOrTabOptions{
		Kind:        token.SpaceOrTab,
		Min:         1,
		Max:         math.MaxInt,
		ContentType: e.contentType,
		Connect:     e.connect,
	}
	return t.Attempt(SpaceOrTabWith(opts), func(ok bool) tokenizer.StateFn {
		if ok {
			e.ok = true
			if e.linked() {
				e.connect = true
			}
		}
		return e.atEOL
	})(t)
}

func (e *eol) atEOL(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != tokenizer.LineEnding {
		if e.ok {
			return tokenizer.Ok
		}
		return tokenizer.Nok
	}
	if e.linked() {
		t.EnterWithLink(token.LineEnding, e.contentType)
		if e.connect {
			tokenizer.LinkRun(t.Events, len(t.Events)-1)
		} else {
			e.connect = true
		}
	} else {
		t.Enter(token.LineEnding)
	}
	t.Consume()
	t.Exit(token.LineEnding)
	return tokenizer.Next(e.afterEOL)
}

func (e *eol) afterEOL(t *tokenizer.Tokenizer) tokenizer.State {
	if !isSpaceOrTab(t.Current) {
		return e.afterMore(t)
	}
	opts := SpaceOrTabOptions{
		Kind:        token.SpaceOrTab,
		Min:         1,
		Max:         math.MaxInt,
		ContentType: e.contentType,
		Connect:     e.linked(),
	}
	return t.AttemptOpt(SpaceOrTabWith(opts), e.afterMore)(t)
}

func (e *eol) afterMore(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == tokenizer.EOF || t.Current == tokenizer.LineEnding {
		return tokenizer.Nok
	}
	return tokenizer.Ok
}

// BlankLine matches optional whitespace followed by a line ending or the
// end of input. The line ending is not consumed.
func BlankLine(t *tokenizer.Tokenizer) tokenizer.State {
	return t.AttemptOpt(SpaceOrTab, blankLineAfter)(t)
}

func blankLineAfter(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == tokenizer.EOF || t.Current == tokenizer.LineEnding {
		return tokenizer.Ok
	}
	return tokenizer.Nok
}
