package decoder

import (
	"github.com/eventheader-go/eventheader/format"
	"github.com/eventheader-go/eventheader/internal/cache"
	"github.com/eventheader-go/eventheader/internal/options"
)

// config holds construction-time defaults applied by NewWithOptions.
type config struct {
	defaultMoveNextLimit uint32
	layoutCache          *cache.Layouts
}

// Option configures an Enumerator at construction time.
type Option = options.Option[*config]

// WithMoveNextLimit sets the moveNextLimit StartEvent falls back to when
// called with limit==0, in place of format.DefaultMoveNextLimit.
func WithMoveNextLimit(limit uint32) Option {
	return options.NoError[*config](func(c *config) {
		c.defaultMoveNextLimit = limit
	})
}

// WithLayoutCache shares a metadata-layout cache across every event this
// Enumerator starts, skipping the event-name scan on repeat tracepoints.
// Callers driving many events from few distinct tracepoints (the common
// case for a perf.data sample stream) typically share one Layouts across
// every pooled Enumerator.
func WithLayoutCache(c *cache.Layouts) Option {
	return options.NoError[*config](func(cfg *config) {
		cfg.layoutCache = c
	})
}

// NewWithOptions returns a ready-to-use Enumerator configured by opts.
func NewWithOptions(opts ...Option) *Enumerator {
	cfg := &config{defaultMoveNextLimit: format.DefaultMoveNextLimit}
	_ = options.Apply(cfg, opts...)
	return &Enumerator{
		defaultMoveNextLimit: cfg.defaultMoveNextLimit,
		layoutCache:          cfg.layoutCache,
	}
}
