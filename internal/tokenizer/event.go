package tokenizer

import (
	"fmt"

	"github.com/zjrosen/micromd/internal/token"
)

// Kind is the edge of an event.
type Kind int

const (
	Enter Kind = iota
	Exit
)

func (k Kind) String() string {
	if k == Enter {
		return "enter"
	}
	return "exit"
}

// ContentType selects the grammar that re-parses the interior of a linked
// span.
type ContentType int

const (
	ContentNone ContentType = iota
	ContentFlow
	ContentContent
	ContentString
	ContentText
)

func (c ContentType) String() string {
	switch c {
	case ContentFlow:
		return "flow"
	case ContentContent:
		return "content"
	case ContentString:
		return "string"
	case ContentText:
		return "text"
	default:
		return ""
	}
}

// Point is a place in the input. Index is the absolute byte offset; Line and
// Column are 1-indexed.
type Point struct {
	Line   int
	Column int
	Index  int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d (%d)", p.Line, p.Column, p.Index)
}

// Shift returns p moved by n bytes. The bytes must not contain a line ending.
func (p Point) Shift(n int) Point {
	p.Column += n
	p.Index += n
	return p
}

// Link marks an Enter event as one run of a chain. Runs sharing a Chain are
// re-tokenized together, in event order, with the grammar of ContentType.
type Link struct {
	Chain       int
	ContentType ContentType
}

// Event is one edge of a span. Nesting is implied by order: every Enter is
// closed by an Exit of the same name at the same depth.
type Event struct {
	Kind  Kind
	Name  token.Name
	Point Point
	Link  *Link
}

// ContentType returns the content type of a linked Enter event, or
// ContentNone.
func (e Event) ContentType() ContentType {
	if e.Link == nil {
		return ContentNone
	}
	return e.Link.ContentType
}

func (e Event) String() string {
	s := fmt.Sprintf("%s %s @ %s", e.Kind, e.Name, e.Point)
	if e.Link != nil {
		s += fmt.Sprintf(" [%s #%d]", e.Link.ContentType, e.Link.Chain)
	}
	return s
}

// LinkRun links the run entered at events[index] to the run entered two
// events before it, which must be the Enter of the previous run in the same
// chain.
func LinkRun(events []Event, index int) {
	LinkRunTo(events, index-2, index)
}

// LinkRunTo links the run entered at events[next] to the chain of the run
// entered at events[previous].
func LinkRunTo(events []Event, previous, next int) {
	if previous < 0 || next >= len(events) {
		panic(fmt.Sprintf("tokenizer: cannot link event %d to %d", next, previous))
	}
	prev, cur := events[previous], events[next]
	if prev.Kind != Enter || cur.Kind != Enter || prev.Link == nil || cur.Link == nil {
		panic(fmt.Sprintf("tokenizer: expected linked enters at %d and %d", previous, next))
	}
	if prev.Link.ContentType != cur.Link.ContentType {
		panic(fmt.Sprintf("tokenizer: cannot link %s run to %s run", cur.Link.ContentType, prev.Link.ContentType))
	}
	cur.Link.Chain = prev.Link.Chain
}

// Slice returns the bytes spanned by the events entered at index and closed by
// its matching exit.
func Slice(bytes []byte, events []Event, index int) []byte {
	exit := MatchingExit(events, index)
	return bytes[events[index].Point.Index:events[exit].Point.Index]
}

// MatchingExit returns the index of the Exit closing the Enter at index.
func MatchingExit(events []Event, index int) int {
	depth := 0
	for i := index; i < len(events); i++ {
		if events[i].Kind == Enter {
			depth++
		} else {
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	panic(fmt.Sprintf("tokenizer: no exit for %s at %d", events[index].Name, index))
}
