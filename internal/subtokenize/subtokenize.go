// Package subtokenize expands linked runs. Runs that share a chain are
// tokenized together as one input, with the grammar of their content type,
// and the resulting events replace the runs in place.
package subtokenize

import (
	"fmt"
	"slices"

	"github.com/zjrosen/micromd/internal/tokenizer"
)

// GrammarFunc returns the start state for a content type.
type GrammarFunc func(tokenizer.ContentType) tokenizer.StateFn

// Chain is the runs of one chain, as indices of their Enter events.
type Chain struct {
	ID          int
	ContentType tokenizer.ContentType
	Members     []int
}

// Chains returns the chains in events whose content type is in types, in
// order of first appearance. Every member must be a leaf Enter/Exit pair.
func Chains(events []tokenizer.Event, types ...tokenizer.ContentType) []Chain {
	var chains []Chain
	byID := map[int]int{}
	for i, e := range events {
		if e.Kind != tokenizer.Enter || e.Link == nil || !slices.Contains(types, e.Link.ContentType) {
			continue
		}
		if i+1 >= len(events) || events[i+1].Kind != tokenizer.Exit || events[i+1].Name != e.Name {
			panic(fmt.Sprintf("subtokenize: linked %s at %d is not a leaf", e.Name, i))
		}
		at, ok := byID[e.Link.Chain]
		if !ok {
			at = len(chains)
			byID[e.Link.Chain] = at
			chains = append(chains, Chain{ID: e.Link.Chain, ContentType: e.Link.ContentType})
		}
		chains[at].Members = append(chains[at].Members, i)
	}
	return chains
}

// Result reports what one Subtokenize pass did.
type Result struct {
	Chains int
	Events int
}

// Subtokenize runs one pass over the chains of the given content types and
// returns the new event list. A pass with Result.Chains == 0 changed
// nothing. Events produced by a pass may contain new chains, so callers
// repeat until nothing changes.
func Subtokenize(events []tokenizer.Event, parse *tokenizer.ParseState, grammar GrammarFunc, types ...tokenizer.ContentType) ([]tokenizer.Event, Result) {
	chains := Chains(events, types...)
	if len(chains) == 0 {
		return events, Result{}
	}

	m := tokenizer.NewEditMap()
	res := Result{Chains: len(chains)}
	for _, chain := range chains {
		spans := make([]tokenizer.Span, len(chain.Members))
		for i, member := range chain.Members {
			spans[i] = tokenizer.Span{Start: events[member].Point, End: events[member+1].Point}
		}

		child := tokenizer.New(parse, spans...)
		childEvents := child.Tokenize(grammar(chain.ContentType))
		res.Events += len(childEvents)

		for i, slice := range divide(childEvents, spans) {
			m.Add(chain.Members[i], 2, slice)
		}
	}
	return m.Apply(events), res
}

// divide splits child events over the spans they fall in. An event at the
// boundary between two spans belongs to the earlier span when it is an exit
// and to the later one when it is an enter.
func divide(events []tokenizer.Event, spans []tokenizer.Span) [][]tokenizer.Event {
	out := make([][]tokenizer.Event, len(spans))
	k := 0
	for _, e := range events {
		p := e.Point.Index
		if e.Kind == tokenizer.Enter {
			for k+1 < len(spans) && p >= spans[k].End.Index {
				k++
			}
		} else {
			for k+1 < len(spans) && p > spans[k].End.Index {
				k++
			}
		}
		out[k] = append(out[k], e)
	}
	return out
}
