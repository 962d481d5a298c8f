package construct

import (
	"strings"

	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// Data returns a construct that matches literal text up to the next byte in
// stops. A stop byte at the very start is eaten, so Data always moves
// forward when the caller's constructs all failed there. Line endings
// become LineEnding tokens.
func Data(stops string) tokenizer.StateFn {
	d := &data{stops: stops}
	return d.start
}

type data struct {
	stops string
}

func (d *data) isStop(b int) bool {
	return b != tokenizer.EOF && strings.IndexByte(d.stops, byte(b)) >= 0
}

func (d *data) start(t *tokenizer.Tokenizer) tokenizer.State {
	if d.isStop(t.Current) {
		t.Enter(token.Data)
		t.Consume()
		return tokenizer.Next(d.inside)
	}
	return d.atBreak(t)
}

func (d *data) atBreak(t *tokenizer.Tokenizer) tokenizer.State {
	switch {
	case t.Current == tokenizer.EOF:
		return tokenizer.Ok
	case t.Current == tokenizer.LineEnding:
		t.Enter(token.LineEnding)
		t.Consume()
		t.Exit(token.LineEnding)
		return tokenizer.Next(d.atBreak)
	case d.isStop(t.Current):
		return tokenizer.Ok
	default:
		t.Enter(token.Data)
		return d.inside(t)
	}
}

func (d *data) inside(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == tokenizer.EOF || t.Current == tokenizer.LineEnding || d.isStop(t.Current) {
		t.Exit(token.Data)
		return d.atBreak(t)
	}
	t.Consume()
	return tokenizer.Next(d.inside)
}

// ResolveData merges adjacent unlinked Data tokens that touch.
func ResolveData(t *tokenizer.Tokenizer) {
	events := t.Events
	m := tokenizer.NewEditMap()
	for i := 0; i < len(events); i++ {
		if !isPlainData(events[i]) {
			continue
		}
		exit := i + 1
		for exit+2 < len(events) &&
			isPlainData(events[exit+1]) &&
			events[exit+1].Point == events[exit].Point {
			exit += 2
		}
		if exit > i+1 {
			m.Add(i+1, exit-(i+1), nil)
		}
		i = exit
	}
	t.Events = m.Apply(events)
}

func isPlainData(e tokenizer.Event) bool {
	return e.Kind == tokenizer.Enter && e.Name == token.Data && e.Link == nil
}
