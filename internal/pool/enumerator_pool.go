// Package pool reuses *decoder.Enumerator values across events, avoiding an
// allocation per event for callers driving a high-rate stream of samples.
//
// An Enumerator holds no heap memory of its own, so there is no buffer to
// grow or shrink the way a byte-buffer pool would; all that is reused here
// is the struct itself and whatever Clear leaves intact (its construction
// options).
package pool

import (
	"sync"

	"github.com/eventheader-go/eventheader/decoder"
)

// EnumeratorPool is a sync.Pool of *decoder.Enumerator values, all
// constructed with the same options.
//
// The zero value is not ready for use; call New.
type EnumeratorPool struct {
	pool sync.Pool
	opts []decoder.Option
}

// New returns an EnumeratorPool whose Enumerators are constructed with opts.
func New(opts ...decoder.Option) *EnumeratorPool {
	return &EnumeratorPool{opts: opts}
}

// Get returns an Enumerator ready for StartEvent: either reused from the
// pool (already Clear-ed by the matching Put) or freshly constructed with
// this pool's options.
func (p *EnumeratorPool) Get() *decoder.Enumerator {
	if e, ok := p.pool.Get().(*decoder.Enumerator); ok {
		return e
	}
	return decoder.NewWithOptions(p.opts...)
}

// Put clears e and returns it to the pool for reuse. The caller must not
// use e after calling Put.
func (p *EnumeratorPool) Put(e *decoder.Enumerator) {
	e.Clear()
	p.pool.Put(e)
}
