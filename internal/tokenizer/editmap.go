package tokenizer

import (
	"slices"
	"sort"
)

type edit struct {
	remove int
	add    []Event
}

// EditMap collects removals and insertions against an event list by index
// and applies them in one pass, so indices recorded before editing stay
// valid while edits are queued.
type EditMap struct {
	edits map[int]*edit
}

// NewEditMap returns an empty EditMap.
func NewEditMap() *EditMap {
	return &EditMap{edits: map[int]*edit{}}
}

// Add removes remove events at index and inserts add there. Repeated calls
// at the same index append after earlier insertions.
func (m *EditMap) Add(index, remove int, add []Event) {
	m.queue(index, remove, add, false)
}

// AddBefore is Add, but inserts before earlier insertions at index.
func (m *EditMap) AddBefore(index, remove int, add []Event) {
	m.queue(index, remove, add, true)
}

func (m *EditMap) queue(index, remove int, add []Event, before bool) {
	e, ok := m.edits[index]
	if !ok {
		m.edits[index] = &edit{remove: remove, add: slices.Clone(add)}
		return
	}
	e.remove += remove
	if before {
		e.add = append(slices.Clone(add), e.add...)
	} else {
		e.add = append(e.add, add...)
	}
}

// Len reports the number of indices with queued edits.
func (m *EditMap) Len() int {
	return len(m.edits)
}

// Apply returns events with all queued edits applied. The map is emptied.
func (m *EditMap) Apply(events []Event) []Event {
	if len(m.edits) == 0 {
		return events
	}
	indices := make([]int, 0, len(m.edits))
	for index := range m.edits {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	out := make([]Event, 0, len(events))
	from := 0
	for _, index := range indices {
		if index < from {
			// Swallowed by an earlier removal.
			out = append(out, m.edits[index].add...)
			continue
		}
		e := m.edits[index]
		out = append(out, events[from:index]...)
		out = append(out, e.add...)
		from = min(index+e.remove, len(events))
	}
	out = append(out, events[from:]...)
	m.edits = map[int]*edit{}
	return out
}
