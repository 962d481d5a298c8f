// Package markdown is the entry point for turning Markdown into events or
// HTML.
package markdown

import (
	"context"
	"fmt"

	"github.com/zjrosen/micromd/internal/compiler"
	"github.com/zjrosen/micromd/internal/config"
	"github.com/zjrosen/micromd/internal/parser"
	"github.com/zjrosen/micromd/internal/tokenizer"
)

// Options configures parsing and compiling.
type Options struct {
	Parse   config.ParseOptions
	Compile config.CompileOptions
}

// DefaultOptions returns CommonMark options with dangerous protocols
// dropped.
func DefaultOptions() Options {
	d := config.Defaults()
	return Options{Parse: d.Parse, Compile: d.Compile}
}

// Validate checks both option sets.
func (o Options) Validate() error {
	if err := config.ValidateParse(o.Parse); err != nil {
		return err
	}
	return config.ValidateCompile(o.Compile)
}

// ToHTML compiles input with the default options.
func ToHTML(input []byte) string {
	out, err := ToHTMLWithOptions(context.Background(), input, DefaultOptions())
	if err != nil {
		// The defaults always validate.
		panic(err)
	}
	return out
}

// ToHTMLWithOptions compiles input with opts.
func ToHTMLWithOptions(ctx context.Context, input []byte, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", fmt.Errorf("to html: %w", err)
	}
	doc, err := parser.Parse(ctx, input, opts.Parse)
	if err != nil {
		return "", fmt.Errorf("to html: %w", err)
	}
	return compiler.Compile(ctx, doc, opts.Compile), nil
}

// Events returns the event stream for input.
func Events(ctx context.Context, input []byte, opts config.ParseOptions) ([]tokenizer.Event, error) {
	doc, err := parser.Parse(ctx, input, opts)
	if err != nil {
		return nil, fmt.Errorf("events: %w", err)
	}
	return doc.Events, nil
}
