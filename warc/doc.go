// Package warc provides weighted atomic reference counting: a smart-pointer
// handle giving multiple owners, possibly on different goroutines, shared
// read access to one heap value, freed exactly once when the last owner
// releases it.
//
// Its defining property is that cloning a handle usually performs no
// cross-goroutine atomic operation at all.
//
// # Quick Start
//
//	ref := warc.New(loadConfig())
//	defer ref.Release()
//
//	worker := ref.Clone() // hand one handle per owner
//	go func() {
//		defer worker.Release()
//		serve(worker.Value())
//	}()
//
// # How It Works
//
// Every cell carries one shared counter of abstract "weight" units; every
// handle privately owns a slice of it. A fresh handle holds the full
// initial block (65536). Cloning halves the clonee's private weight and
// gives the other half to the clone - two private integer writes, nothing
// shared. Only when a handle's weight has run down to 1 (after 16 clones
// of the same handle) does the clone withdraw a fresh block with a single
// compare-and-swap, the one cross-goroutine synchronization point in the
// whole primitive.
//
// Release pays the handle's weight back with one atomic subtraction. The
// release whose subtraction drives the counter to exactly zero is the last
// owner: it runs the cell's finalizer (if any) before returning. At every
// quiescent point the counter equals the sum of live handles' weights, so
// the zero-crossing is observed by exactly one release.
//
// # Concurrency Rules
//
// A Ref is owned by one goroutine at a time: its private weight is
// deliberately non-atomic, so a single Ref must never be used from two
// goroutines at once (handing it off is fine). Distinct Refs sharing a
// cell are fully concurrent-safe, and plain reads of the shared value
// through distinct Refs are always safe because nothing mutates it.
//
// The API is infallible in normal use: no operation returns an error, and
// the only fatal conditions are protocol violations (use after release,
// over-release) and the unreachable weight-ceiling overflow, all of which
// panic.
//
// # Value Semantics
//
// The shared value is read-only through the handle. Formatting, equality,
// ordering and hashing all delegate to the value: a Ref prints as its
// pointee, [Equal] and [Compare] act on pointees, and [Hash] lets a Ref
// key hash-based containers by its pointee.
//
// # Performance Characteristics
//
//	Clone (weight > 1):  two private writes, no atomics, one allocation (the Ref)
//	Clone (weight == 1): one compare-and-swap, then the fast path
//	Release:             one atomic subtraction
//	Value:               a field load
//
// # API Overview
//
//   - Creation: [New], [NewWithFinalizer]
//   - Handle ops: Clone, Release, Value, Do (methods on [Ref])
//   - Value delegation: [Equal], [Compare], [Hash]
//   - Introspection: [GetInfo], [Version], [InitialWeight]
//
// # Non-Goals
//
// warc deliberately has no weak handles, no atomic replacement of the
// pointee, no cycle detection and no mutation through the handle. If you
// need a mutable hot-swappable current value, put the swap above warc and
// let each reader keep the handle it acquired.
package warc
