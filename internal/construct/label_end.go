package construct

import (
	"maps"
	"slices"

	"github.com/zjrosen/micromd/internal/identifier"
	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// LabelEnd matches the `]` that closes the most recent label start, along
// with what follows it: a resource, a full reference, a collapsed
// reference, or nothing (a shortcut reference). References must name a
// definition.
//
// When it fails, the label start it tried is moved to the loose list and is
// never tried again.
func LabelEnd(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != ']' || !t.Parse.Options.Constructs.LabelEnd || len(t.LabelStarts) == 0 {
		return tokenizer.Nok
	}
	le := &labelEnd{end: len(t.Events)}
	if t.LabelStarts[len(t.LabelStarts)-1].Inactive {
		return le.nok(t)
	}
	t.Enter(token.LabelEnd)
	t.Enter(token.LabelMarker)
	t.Consume()
	t.Exit(token.LabelMarker)
	t.Exit(token.LabelEnd)
	return tokenizer.Next(le.after)
}

type labelEnd struct {
	// end is the index of the LabelEnd enter event.
	end     int
	defined bool
}

func (le *labelEnd) after(t *tokenizer.Tokenizer) tokenizer.State {
	start := t.LabelStarts[len(t.LabelStarts)-1]
	from := t.Events[start.Start[1]].Point.Index
	to := t.Events[le.end].Point.Index
	text := t.Parse.Bytes[from:to]
	le.defined = labelFits(text, t.Parse.Options.LabelSizeMax) &&
		t.Parse.Defined(identifier.Normalize(string(text)))

	switch t.Current {
	case '(':
		return t.Attempt(Resource, func(ok bool) tokenizer.StateFn {
			if ok || le.defined {
				return le.ok
			}
			return le.nok
		})(t)
	case '[':
		return t.Attempt(ReferenceFull, func(ok bool) tokenizer.StateFn {
			switch {
			case ok:
				return le.ok
			case le.defined:
				return le.referenceNotFull
			default:
				return le.nok
			}
		})(t)
	default:
		if le.defined {
			return le.ok(t)
		}
		return le.nok(t)
	}
}

func (le *labelEnd) referenceNotFull(t *tokenizer.Tokenizer) tokenizer.State {
	return t.Attempt(ReferenceCollapsed, func(ok bool) tokenizer.StateFn {
		if ok {
			return le.ok
		}
		return le.nok
	})(t)
}

func (le *labelEnd) ok(t *tokenizer.Tokenizer) tokenizer.State {
	start := t.LabelStarts[len(t.LabelStarts)-1]
	t.LabelStarts = t.LabelStarts[:len(t.LabelStarts)-1]

	// No links in links.
	if t.Events[start.Start[0]].Name == token.LabelLink {
		for i := range t.LabelStarts {
			if t.Events[t.LabelStarts[i].Start[0]].Name == token.LabelLink {
				t.LabelStarts[i].Inactive = true
			}
		}
	}

	t.Media = append(t.Media, tokenizer.Media{
		Start: start.Start,
		End:   [2]int{le.end, len(t.Events) - 1},
	})
	t.RegisterResolver(labelResolver, ResolveLabel)
	return tokenizer.Ok
}

func (le *labelEnd) nok(t *tokenizer.Tokenizer) tokenizer.State {
	start := t.LabelStarts[len(t.LabelStarts)-1]
	t.LabelStarts = t.LabelStarts[:len(t.LabelStarts)-1]
	t.LabelStartsLoose = append(t.LabelStartsLoose, start)
	return tokenizer.Nok
}

// ResolveLabel wraps every matched label start and end in a Link or Image
// group:
//
//	Link|Image > Label > (label start, LabelText, LabelEnd), Resource|Reference
//
// Label starts that never matched become Data, so no label start events
// remain.
func ResolveLabel(t *tokenizer.Tokenizer) {
	events := t.Events
	enters := map[int][]tokenizer.Event{}
	exits := map[int][]tokenizer.Event{}

	enter := func(index int, name token.Name, point tokenizer.Point) {
		// Media finish inner first, so an outer enter at the same index
		// goes before the inner ones.
		e := tokenizer.Event{Kind: tokenizer.Enter, Name: name, Point: point}
		enters[index] = append([]tokenizer.Event{e}, enters[index]...)
	}
	exit := func(index int, name token.Name, point tokenizer.Point) {
		e := tokenizer.Event{Kind: tokenizer.Exit, Name: name, Point: point}
		exits[index] = append(exits[index], e)
	}

	for _, media := range t.Media {
		groupEnter := media.Start[0]
		group := token.Link
		if events[groupEnter].Name == token.LabelImage {
			group = token.Image
		}
		textEnter := media.Start[1] + 1
		textExit := media.End[0]
		labelExit := media.End[0] + 3
		groupExit := media.End[1]
		point := events[groupEnter].Point

		enter(groupEnter, token.Label, point)
		enter(groupEnter, group, point)
		if textEnter != textExit {
			enter(textEnter, token.LabelText, events[textEnter].Point)
			exit(textExit, token.LabelText, events[textExit].Point)
		}
		exit(labelExit+1, token.Label, events[labelExit].Point)
		exit(groupExit+1, group, events[groupExit].Point)
	}

	m := tokenizer.NewEditMap()
	indices := slices.Sorted(maps.Keys(enters))
	indices = append(indices, slices.Collect(maps.Keys(exits))...)
	slices.Sort(indices)
	for _, index := range slices.Compact(indices) {
		m.Add(index, 0, append(exits[index], enters[index]...))
	}

	for _, start := range append(t.LabelStarts, t.LabelStartsLoose...) {
		first, last := start.Start[0], start.Start[1]
		m.Add(first, last-first+1, []tokenizer.Event{
			{Kind: tokenizer.Enter, Name: token.Data, Point: events[first].Point},
			{Kind: tokenizer.Exit, Name: token.Data, Point: events[last].Point},
		})
	}

	t.Events = m.Apply(events)
	t.LabelStarts = nil
	t.LabelStartsLoose = nil
	t.Media = nil
}

// labelFits reports whether text is within limit bytes, counted the way Label
// counts them: line endings and the whitespace after them are free.
func labelFits(text []byte, limit int) bool {
	size := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '\r' && text[i] != '\n' {
			size++
			if size > limit {
				return false
			}
			continue
		}
		for i+1 < len(text) && (text[i+1] == '\n' || isSpaceOrTab(int(text[i+1]))) {
			i++
		}
	}
	return true
}
