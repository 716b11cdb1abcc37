package eventheader

import (
	"iter"

	"github.com/eventheader-go/eventheader/decoder"
	"github.com/eventheader-go/eventheader/internal/pool"
)

// Items wraps e's MoveNext/GetItemInfo loop as a range-over-func iterator,
// stopping at the first of: enumeration completing (AfterLastItem) or a
// failure (Error). Check e.LastError() after the range to tell the two
// apart; Items itself yields no error value, mirroring
// encoding.ColumnarDecoder[T].All's plain-value iteration.
//
// The yielded Item borrows e's buffer, same as GetItemInfo: it is valid
// only until the loop's next iteration, which calls MoveNext again.
func Items(e *decoder.Enumerator) iter.Seq[decoder.Item] {
	return func(yield func(decoder.Item) bool) {
		for e.MoveNext() {
			if e.State() == decoder.StateAfterLastItem {
				return
			}
			if !yield(e.GetItemInfo()) {
				return
			}
		}
	}
}

// Pool reuses *decoder.Enumerator values across events, for callers driving
// many events per second (one perf.data sample stream) who want to avoid
// allocating a fresh Enumerator per event. An Enumerator holds no heap
// memory of its own, so reuse only saves the cost of zeroing/reinitializing
// it, but that is still worth amortizing at high event rates.
type Pool = pool.EnumeratorPool

// NewPool returns a Pool whose Enumerators are constructed with opts (see
// decoder.WithMoveNextLimit, decoder.WithLayoutCache).
func NewPool(opts ...decoder.Option) *Pool {
	return pool.New(opts...)
}
