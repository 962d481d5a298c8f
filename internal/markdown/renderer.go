package markdown

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/micromd/internal/cachemanager"
	"github.com/zjrosen/micromd/internal/config"
	"github.com/zjrosen/micromd/internal/log"
	"github.com/zjrosen/micromd/internal/tracing"
)

// Digest identifies an input by content.
type Digest string

// DigestOf returns the digest of input.
func DigestOf(input []byte) Digest {
	sum := sha256.Sum256(input)
	return Digest(hex.EncodeToString(sum[:]))
}

// Renderer compiles documents to HTML and caches the result by content, so
// re-rendering an unchanged file is a lookup.
type Renderer struct {
	opts  Options
	ttl   time.Duration
	cache *cachemanager.InMemoryCacheManager[Digest, string]
	read  *cachemanager.ReadThroughCache[Digest, string, []byte]
}

// NewRenderer returns a renderer for opts. A zero cfg.TTL disables caching.
func NewRenderer(opts Options, cfg config.CacheConfig) (*Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("new renderer: %w", err)
	}
	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = cachemanager.DefaultCleanupInterval
	}
	ttl := cfg.TTL
	cache := cachemanager.NewInMemoryCacheManager[Digest, string]("html", max(ttl, 0), cleanup)

	r := &Renderer{opts: opts, ttl: ttl, cache: cache}
	r.read = cachemanager.NewReadThroughCache[Digest, string, []byte](cache, r.render, ttl <= 0)
	return r, nil
}

func (r *Renderer) render(ctx context.Context, input []byte) (string, error) {
	return ToHTMLWithOptions(ctx, input, r.opts)
}

// Render returns the HTML for input.
func (r *Renderer) Render(ctx context.Context, input []byte) (string, error) {
	ctx, span := tracing.Tracer().Start(ctx, tracing.SpanRender)
	defer span.End()

	key := DigestOf(input)
	out, hit, err := r.read.GetWithRefresh(ctx, key, input, r.ttl)
	span.SetAttributes(attribute.Bool(tracing.AttrCacheHit, hit))
	if err != nil {
		span.SetAttributes(attribute.String(tracing.AttrErrorMessage, err.Error()))
		return "", err
	}
	log.Debug(log.CatCache, "Rendered", "digest", key[:12], "hit", hit, "bytes", len(out))
	return out, nil
}

// Cached returns the number of cached documents.
func (r *Renderer) Cached() int {
	return r.cache.Len()
}

// Flush empties the cache.
func (r *Renderer) Flush(ctx context.Context) error {
	return r.cache.Flush(ctx)
}
