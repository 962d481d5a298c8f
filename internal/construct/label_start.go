package construct

import (
	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// labelResolver is the name the label resolver is registered under.
const labelResolver = "label"

// LabelStartLink matches the `[` that may open a link.
func LabelStartLink(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != '[' || !t.Parse.Options.Constructs.LabelStartLink {
		return tokenizer.Nok
	}
	start := len(t.Events)
	t.Enter(token.LabelLink)
	t.Enter(token.LabelMarker)
	t.Consume()
	t.Exit(token.LabelMarker)
	t.Exit(token.LabelLink)
	t.LabelStarts = append(t.LabelStarts, tokenizer.LabelStart{Start: [2]int{start, len(t.Events) - 1}})
	t.RegisterResolver(labelResolver, ResolveLabel)
	return tokenizer.Ok
}

// LabelStartImage matches the `![` that may open an image.
func LabelStartImage(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != '!' || !t.Parse.Options.Constructs.LabelStartImage {
		return tokenizer.Nok
	}
	t.Enter(token.LabelImage)
	t.Enter(token.LabelImageMarker)
	t.Consume()
	t.Exit(token.LabelImageMarker)
	return tokenizer.Next(labelStartImageOpen)
}

func labelStartImageOpen(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current != '[' {
		return tokenizer.Nok
	}
	t.Enter(token.LabelMarker)
	t.Consume()
	t.Exit(token.LabelMarker)
	t.Exit(token.LabelImage)
	// The image start is the five events ending here.
	end := len(t.Events) - 1
	t.LabelStarts = append(t.LabelStarts, tokenizer.LabelStart{Start: [2]int{end - 5, end}})
	t.RegisterResolver(labelResolver, ResolveLabel)
	return tokenizer.Ok
}
