package tracing

// Span names.
const (
	SpanParse       = "parse"
	SpanFlow        = "parse.flow"
	SpanSubtokenize = "parse.subtokenize"
	SpanCompile     = "compile.html"
	SpanRender      = "render"
)

// Span attribute keys.
const (
	AttrInputBytes   = "input.bytes"
	AttrEvents       = "events.count"
	AttrContentTypes = "subtokenize.content_types"
	AttrChains       = "subtokenize.chains"
	AttrPasses       = "subtokenize.passes"
	AttrDefinitions  = "definitions.count"
	AttrOutputBytes  = "output.bytes"
	AttrCacheHit     = "cache.hit"
	AttrErrorMessage = "error.message"
)
