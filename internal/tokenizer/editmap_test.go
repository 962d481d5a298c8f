package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/micromd/internal/token"
)

func names(events []Event) []token.Name {
	out := make([]token.Name, len(events))
	for i, e := range events {
		out[i] = e.Name
	}
	return out
}

func pair(name token.Name) []Event {
	return []Event{{Kind: Enter, Name: name}, {Kind: Exit, Name: name}}
}

func TestEditMap_Apply(t *testing.T) {
	events := append(pair(token.Paragraph), pair(token.Data)...)

	tests := []struct {
		name     string
		edit     func(m *EditMap)
		expected []token.Name
	}{
		{
			name:     "no edits",
			edit:     func(*EditMap) {},
			expected: []token.Name{token.Paragraph, token.Paragraph, token.Data, token.Data},
		},
		{
			name: "replace a pair",
			edit: func(m *EditMap) {
				m.Add(2, 2, pair(token.LineEnding))
			},
			expected: []token.Name{token.Paragraph, token.Paragraph, token.LineEnding, token.LineEnding},
		},
		{
			name: "insert at end",
			edit: func(m *EditMap) {
				m.Add(4, 0, pair(token.LineEnding))
			},
			expected: []token.Name{token.Paragraph, token.Paragraph, token.Data, token.Data, token.LineEnding, token.LineEnding},
		},
		{
			name: "add appends and add before prepends at the same index",
			edit: func(m *EditMap) {
				m.Add(1, 0, []Event{{Kind: Exit, Name: token.Label}})
				m.Add(1, 0, []Event{{Kind: Exit, Name: token.Link}})
				m.AddBefore(1, 0, []Event{{Kind: Enter, Name: token.LabelText}})
			},
			expected: []token.Name{token.Paragraph, token.LabelText, token.Label, token.Link, token.Paragraph, token.Data, token.Data},
		},
		{
			name: "removals accumulate",
			edit: func(m *EditMap) {
				m.Add(0, 2, nil)
				m.Add(0, 1, nil)
			},
			expected: []token.Name{token.Data},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewEditMap()
			tt.edit(m)
			got := m.Apply(events)
			require.Equal(t, tt.expected, names(got))
			require.Equal(t, 0, m.Len())
		})
	}
}
