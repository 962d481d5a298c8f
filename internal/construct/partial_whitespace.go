package construct

import (
	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// hardBreakPrefixSizeMin is the number of trailing spaces that make a hard
// break.
const hardBreakPrefixSizeMin = 2

// ResolveWhitespace returns a resolver that splits whitespace off the ends
// of lines in Data tokens. Trailing whitespace becomes SpaceOrTab, or
// HardBreakTrailing when hardBreak is set and the whitespace is at least two
// spaces before a line ending. Leading whitespace after a line ending
// becomes SpaceOrTab. With trimWhole, the start and end of the whole input
// count as line boundaries too.
func ResolveWhitespace(hardBreak, trimWhole bool) func(t *tokenizer.Tokenizer) {
	return func(t *tokenizer.Tokenizer) {
		hardBreak := hardBreak && t.Parse.Options.Constructs.HardBreakTrailing
		events := t.Events
		m := tokenizer.NewEditMap()

		for i := 0; i+1 < len(events); i++ {
			if !isPlainData(events[i]) {
				continue
			}
			exit := i + 1
			atStart := (trimWhole && i == 0) ||
				(i > 0 && events[i-1].Kind == tokenizer.Exit && events[i-1].Name == token.LineEnding)
			beforeEOL := exit+1 < len(events) &&
				events[exit+1].Kind == tokenizer.Enter && events[exit+1].Name == token.LineEnding
			atEnd := beforeEOL || (trimWhole && exit == len(events)-1)

			start, end := events[i].Point, events[exit].Point
			bytes := t.Parse.Bytes[start.Index:end.Index]

			trail := 0
			spacesOnly := true
			if atEnd {
				for trail < len(bytes) && isSpaceOrTab(int(bytes[len(bytes)-1-trail])) {
					if bytes[len(bytes)-1-trail] == '\t' {
						spacesOnly = false
					}
					trail++
				}
			}
			lead := 0
			if atStart {
				for lead < len(bytes)-trail && isSpaceOrTab(int(bytes[lead])) {
					lead++
				}
			}
			if lead == 0 && trail == 0 {
				i = exit
				continue
			}

			var add []tokenizer.Event
			if lead > 0 {
				add = append(add, span(token.SpaceOrTab, start, start.Shift(lead))...)
			}
			if lead+trail < len(bytes) {
				add = append(add, span(token.Data, start.Shift(lead), end.Shift(-trail))...)
			}
			if trail > 0 {
				kind := token.SpaceOrTab
				if hardBreak && spacesOnly && beforeEOL && trail >= hardBreakPrefixSizeMin {
					kind = token.HardBreakTrailing
				}
				add = append(add, span(kind, end.Shift(-trail), end)...)
			}
			m.Add(i, 2, add)
			i = exit
		}
		t.Events = m.Apply(events)
	}
}

func span(name token.Name, from, to tokenizer.Point) []tokenizer.Event {
	return []tokenizer.Event{
		{Kind: tokenizer.Enter, Name: name, Point: from},
		{Kind: tokenizer.Exit, Name: name, Point: to},
	}
}
