package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/micromd/internal/token"
)

func TestLinkRun(t *testing.T) {
	events := []Event{
		{Kind: Enter, Name: token.Data, Link: &Link{Chain: 1, ContentType: ContentString}},
		{Kind: Exit, Name: token.Data},
		{Kind: Enter, Name: token.Data, Link: &Link{Chain: 2, ContentType: ContentString}},
		{Kind: Exit, Name: token.Data},
	}
	LinkRun(events, 2)
	require.Equal(t, 1, events[2].Link.Chain)
}

func TestLinkRun_Mismatch(t *testing.T) {
	events := []Event{
		{Kind: Enter, Name: token.Data, Link: &Link{Chain: 1, ContentType: ContentString}},
		{Kind: Exit, Name: token.Data},
		{Kind: Enter, Name: token.Data, Link: &Link{Chain: 2, ContentType: ContentText}},
	}
	require.Panics(t, func() { LinkRun(events, 2) })
	require.Panics(t, func() { LinkRun(events, 1) })
}

func TestSliceAndMatchingExit(t *testing.T) {
	input := []byte("[ab]")
	events := []Event{
		{Kind: Enter, Name: token.Label, Point: Point{Line: 1, Column: 1, Index: 0}},
		{Kind: Enter, Name: token.LabelText, Point: Point{Line: 1, Column: 2, Index: 1}},
		{Kind: Exit, Name: token.LabelText, Point: Point{Line: 1, Column: 4, Index: 3}},
		{Kind: Exit, Name: token.Label, Point: Point{Line: 1, Column: 5, Index: 4}},
	}
	require.Equal(t, 3, MatchingExit(events, 0))
	require.Equal(t, "ab", string(Slice(input, events, 1)))
	require.Equal(t, "[ab]", string(Slice(input, events, 0)))
}

func TestPoint_Shift(t *testing.T) {
	p := Point{Line: 2, Column: 3, Index: 10}
	require.Equal(t, Point{Line: 2, Column: 5, Index: 12}, p.Shift(2))
	require.Equal(t, Point{Line: 2, Column: 2, Index: 9}, p.Shift(-1))
}
