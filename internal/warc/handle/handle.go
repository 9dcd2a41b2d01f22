// Package handle implements the per-owner handles of a weighted reference
// count.
//
// A Ref is one owner's claim on a shared cell. It pairs a goroutine-private
// local weight with a non-owning pointer to the cell, and implements the two
// protocol operations on top of the cell's counter primitives:
//   - Clone splits the local weight, withdrawing a fresh block first when
//     the weight has run down to 1 (the only case that touches shared state).
//   - Release pays the local weight back and tears the cell down when it was
//     the last weight outstanding.
//
// Performance requirements:
//   - Clone fast path: no atomic read-modify-write, no allocation besides
//     the new Ref itself.
//   - Value: a field load, inline-candidate.
//
// A Ref must not be used concurrently from two goroutines: the local weight
// is deliberately non-atomic. Handing a Ref from one goroutine to another is
// fine, as is concurrent use of distinct Refs sharing one cell.
package handle

import (
	"github.com/kolkov/warc/internal/warc/cell"
	"github.com/kolkov/warc/internal/warc/weight"
)

// Ref is one owner's handle on a shared value.
//
// Layout:
//   - local: this owner's private portion of the shared weight counter.
//     Touched only by the owning goroutine, never atomically.
//   - cell: non-owning reference to the shared cell. Ownership is tracked
//     out-of-band by the weight protocol; a nil cell marks a released Ref.
//
// Invariant: while the Ref is live, local is an exact power of two in
// [1, weight.Initial], and at every quiescent point the cell's counter
// equals the sum of all live Refs' local weights. The sum lets each Ref
// decide, with no coordination, exactly how much weight it may return
// on release.
type Ref[T any] struct {
	local weight.Weight
	cell  *cell.Cell[T]
}

// New allocates a shared cell owning value and returns its first handle,
// holding one full initial weight block.
func New[T any](value T) *Ref[T] {
	return NewWithFinalizer[T](value, nil)
}

// NewWithFinalizer is New with a teardown hook: finalizer runs exactly
// once, inside the Release call that drops the last handle, with a pointer
// to the shared value. Use it to close or recycle resources the value
// holds; leave it nil when garbage collection is enough.
func NewWithFinalizer[T any](value T, finalizer func(*T)) *Ref[T] {
	return &Ref[T]{
		local: weight.Initial,
		cell:  cell.New(value, finalizer),
	}
}

// Clone produces a second live handle sharing r's cell.
//
// Fast path (local weight > 1, at least 15 of every 16 clones): the local
// weight is halved losslessly and the two handles split it. No shared
// memory is touched at all.
//
// Slow path (local weight == 1): one block of fresh weight is withdrawn
// from the shared counter first - the single compare-and-swap that is the
// clone path's only cross-goroutine synchronization - bringing the local
// weight back to weight.Initial, and the fast path then applies.
//
// Neither handle's weight ever reaches 0 while live, and both end up with
// an exact power of two in [1, weight.Initial].
//
// Clone panics if r has been released.
func (r *Ref[T]) Clone() *Ref[T] {
	c := r.live("Clone")
	if r.local == 1 {
		r.local += c.Withdraw()
	}
	r.local = r.local.Halve()
	return &Ref[T]{local: r.local, cell: c}
}

// Release consumes the handle, paying its local weight back into the
// shared counter. If that return exhausts the counter, this was the last
// handle and the cell is torn down (running the finalizer, if any) before
// Release returns.
//
// Every handle must be released exactly once. The idiomatic shape for a
// scope-bound handle covers every exit path:
//
//	ref := other.Clone()
//	defer ref.Release()
//
// Release panics if r has already been released.
func (r *Ref[T]) Release() {
	c := r.live("Release")
	w := r.local
	r.cell = nil
	r.local = 0
	c.Return(w)
}

// Value returns a pointer to the shared value.
//
// The pointee is read-only shared state: concurrent plain reads through
// distinct handles are always safe, and no handle may mutate it. The
// pointer is valid exactly as long as r is live; keeping it past Release
// forfeits the teardown guarantee.
//
// Value panics if r has been released.
//
//go:nosplit
func (r *Ref[T]) Value() *T {
	return r.live("Value").Value()
}

// Do runs fn with read access to the shared value through a clone that is
// released on every exit path, including panics. It is the scope-bound
// form of Clone for callers that would otherwise juggle a defer:
//
//	ref.Do(func(v *Config) {
//		apply(v)
//	})
func (r *Ref[T]) Do(fn func(*T)) {
	clone := r.Clone()
	defer clone.Release()
	fn(clone.Value())
}

// live returns the cell behind r, panicking with the offending operation's
// name if r has been released. Use-after-release is a protocol violation,
// not an error condition.
func (r *Ref[T]) live(op string) *cell.Cell[T] {
	if r.cell == nil {
		panic("warc: " + op + " on released Ref")
	}
	return r.cell
}

// LocalWeight returns this handle's private weight.
// For testing and diagnostics only.
func (r *Ref[T]) LocalWeight() uint64 {
	return uint64(r.local)
}

// SharedWeight returns the shared counter of the cell behind r.
// Meaningful only at quiescent points. For testing and diagnostics only.
func (r *Ref[T]) SharedWeight() uint64 {
	return uint64(r.live("SharedWeight").Weight())
}

// Withdrawals returns how many weight withdrawals the cell behind r has
// seen. For testing and diagnostics only.
func (r *Ref[T]) Withdrawals() uint64 {
	return r.live("Withdrawals").Withdrawals()
}
