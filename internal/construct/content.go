package construct

import (
	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// ContentChunk matches lines of content in the flow. Each line is a
// ChunkContent linked to the previous one as content, with its line ending
// inside it. Content stops before a line ending that is followed by a blank
// line or the end of input.
func ContentChunk(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == tokenizer.EOF || t.Current == tokenizer.LineEnding {
		return tokenizer.Nok
	}
	t.Enter(token.Content)
	t.EnterWithLink(token.ChunkContent, tokenizer.ContentContent)
	return contentChunkInside(t)
}

func contentChunkInside(t *tokenizer.Tokenizer) tokenizer.State {
	switch t.Current {
	case tokenizer.EOF:
		return contentChunkEnd(t)
	case tokenizer.LineEnding:
		return t.Check(contentContinuation, func(ok bool) tokenizer.StateFn {
			if ok {
				return contentChunkNextLine
			}
			return contentChunkEnd
		})(t)
	default:
		t.Consume()
		return tokenizer.Next(contentChunkInside)
	}
}

func contentChunkNextLine(t *tokenizer.Tokenizer) tokenizer.State {
	t.Consume()
	t.Exit(token.ChunkContent)
	t.EnterWithLink(token.ChunkContent, tokenizer.ContentContent)
	tokenizer.LinkRun(t.Events, len(t.Events)-1)
	return tokenizer.Next(contentChunkInside)
}

func contentChunkEnd(t *tokenizer.Tokenizer) tokenizer.State {
	t.Exit(token.ChunkContent)
	t.Exit(token.Content)
	return tokenizer.Ok
}

// contentContinuation checks that the line after a line ending is not
// blank.
func contentContinuation(t *tokenizer.Tokenizer) tokenizer.State {
	t.Enter(token.LineEnding)
	t.Consume()
	t.Exit(token.LineEnding)
	return tokenizer.Next(func(t *tokenizer.Tokenizer) tokenizer.State {
		return t.Check(BlankLine, func(blank bool) tokenizer.StateFn {
			if blank {
				return tokenizer.NokFn
			}
			return tokenizer.OkFn
		})(t)
	})
}

// Paragraph matches the rest of the content as one Data run linked as text.
func Paragraph(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == tokenizer.EOF {
		return tokenizer.Nok
	}
	t.Enter(token.Paragraph)
	t.EnterWithLink(token.Data, tokenizer.ContentText)
	return paragraphInside(t)
}

func paragraphInside(t *tokenizer.Tokenizer) tokenizer.State {
	if t.Current == tokenizer.EOF {
		t.Exit(token.Data)
		t.Exit(token.Paragraph)
		return tokenizer.Ok
	}
	t.Consume()
	return tokenizer.Next(paragraphInside)
}
