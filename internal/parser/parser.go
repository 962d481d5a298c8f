// Package parser runs the full tokenization pipeline: the document is
// tokenized as flow, content chains are expanded, definitions are collected,
// and text and string chains are expanded until none remain.
package parser

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/micromd/internal/config"
	"github.com/zjrosen/micromd/internal/content"
	"github.com/zjrosen/micromd/internal/identifier"
	"github.com/zjrosen/micromd/internal/log"
	"github.com/zjrosen/micromd/internal/subtokenize"
	"github.com/zjrosen/micromd/internal/token"
	"github.com/zjrosen/micromd/internal/tokenizer"
	"github.com/zjrosen/micromd/internal/tracing"
)

// Document is a fully tokenized input.
type Document struct {
	Bytes  []byte
	Events []tokenizer.Event

	// Definitions holds the normalized identifier of every definition, in
	// document order, first occurrence only.
	Definitions []string
}

// Parse tokenizes input with opts. The only error is an invalid option.
func Parse(ctx context.Context, input []byte, opts config.ParseOptions) (*Document, error) {
	if err := config.ValidateParse(opts); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	ctx, span := tracing.Tracer().Start(ctx, tracing.SpanParse,
		trace.WithAttributes(attribute.Int(tracing.AttrInputBytes, len(input))))
	defer span.End()

	parse := tokenizer.NewParseState(input, opts)

	_, flowSpan := tracing.Tracer().Start(ctx, tracing.SpanFlow)
	events := tokenizer.New(parse).Tokenize(content.Flow)
	flowSpan.SetAttributes(attribute.Int(tracing.AttrEvents, len(events)))
	flowSpan.End()
	log.Debug(log.CatParser, "Tokenized flow", "bytes", len(input), "events", len(events))

	events = expand(ctx, events, parse, tokenizer.ContentContent)

	ids := collectDefinitions(input, events, parse)
	log.Debug(log.CatParser, "Collected definitions", "count", len(ids))

	events = expand(ctx, events, parse, tokenizer.ContentText, tokenizer.ContentString)

	span.SetAttributes(
		attribute.Int(tracing.AttrEvents, len(events)),
		attribute.Int(tracing.AttrDefinitions, len(ids)),
	)
	return &Document{Bytes: input, Events: events, Definitions: ids}, nil
}

// expand runs subtokenize passes over types until a pass finds no chains.
func expand(ctx context.Context, events []tokenizer.Event, parse *tokenizer.ParseState, types ...tokenizer.ContentType) []tokenizer.Event {
	names := make([]string, len(types))
	for i, ct := range types {
		names[i] = ct.String()
	}
	_, span := tracing.Tracer().Start(ctx, tracing.SpanSubtokenize,
		trace.WithAttributes(attribute.StringSlice(tracing.AttrContentTypes, names)))
	defer span.End()

	passes, chains := 0, 0
	for {
		var res subtokenize.Result
		events, res = subtokenize.Subtokenize(events, parse, content.Grammar, types...)
		if res.Chains == 0 {
			break
		}
		passes++
		chains += res.Chains
		log.Debug(log.CatSubtokenize, "Expanded chains", "types", names, "pass", passes, "chains", res.Chains, "events", res.Events)
	}

	span.SetAttributes(
		attribute.Int(tracing.AttrPasses, passes),
		attribute.Int(tracing.AttrChains, chains),
		attribute.Int(tracing.AttrEvents, len(events)),
	)
	return events
}

// collectDefinitions records every definition label in parse so references
// in text can see definitions that come after them.
func collectDefinitions(input []byte, events []tokenizer.Event, parse *tokenizer.ParseState) []string {
	var ids []string
	for i, e := range events {
		if e.Kind != tokenizer.Enter || e.Name != token.DefinitionLabelString {
			continue
		}
		id := identifier.Normalize(string(tokenizer.Slice(input, events, i)))
		if parse.Defined(id) {
			continue
		}
		parse.Definitions[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
