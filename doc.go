// Package eventheader decodes Linux EventHeader tracepoint events: a
// pull-style, zero-copy, borrow-safe enumerator over the byte buffer a
// perf.data reader (or similar upstream collaborator) hands it for one
// event's user-data region.
//
// # Core Features
//
//   - Zero-copy, zero-allocation decoding of one event at a time
//   - Full traversal (MoveNext), sibling-skipping (MoveNextSibling), and
//     metadata-only (MoveNextMetadata) iteration modes
//   - A fixed-capacity struct/array nesting stack, bounding worst-case work
//     per event regardless of how the producer shaped its data
//   - A caller-tunable step budget (moveNextLimit) defending against
//     adversarial or buggy producers that describe unbounded nesting
//
// # Basic Usage
//
// Decoding one event:
//
//	import "github.com/eventheader-go/eventheader"
//	import "github.com/eventheader-go/eventheader/decoder"
//
//	var e decoder.Enumerator
//	if !e.StartEvent(tracepointName, eventBytes, 0) {
//	    log.Fatal(e.LastError())
//	}
//	for item := range eventheader.Items(&e) {
//	    fmt.Printf("%s: %s\n", string(item.Name), item.Encoding)
//	}
//
// Decoding many events from a shared pool:
//
//	pool := eventheader.NewPool()
//
//	for _, sample := range samples {
//	    e := pool.Get()
//	    if e.StartEvent(sample.Tracepoint, sample.Data, 0) {
//	        for item := range eventheader.Items(e) {
//	            handle(item)
//	        }
//	    }
//	    if err := e.LastError(); err != nil {
//	        log.Printf("%s: %v", sample.Tracepoint, err)
//	    }
//	    pool.Put(e)
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the decoder
// package, simplifying the most common use cases. For direct access to
// state/substate and the full StartEvent/MoveNext* surface, use the
// decoder package directly.
package eventheader
