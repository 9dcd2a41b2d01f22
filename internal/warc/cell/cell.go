package cell

import (
	"sync/atomic"

	"github.com/kolkov/warc/internal/warc/weight"
)

// Cell is the heap block shared by every handle to one value.
//
// Layout:
//   - shared: the shared weight counter (sum of all live handles' claims)
//   - withdrawals: diagnostics counter of successful withdrawals
//   - torn: exactly-once teardown guard
//   - finalizer: optional teardown hook, run by the final release
//   - value: the shared value, reachable read-only through any handle
//
// A Cell is allocated once by New and torn down once, inside the Return
// call that drives the shared counter to zero. Handles reference it
// non-owningly; ownership is tracked entirely through the weight protocol.
type Cell[T any] struct {
	// shared is the shared weight counter. It is the only truly shared
	// mutable state in the whole primitive and is accessed exclusively
	// through atomic instructions.
	shared atomic.Uint64

	// withdrawals counts successful Withdraw operations. Diagnostics only,
	// never read on the protocol paths.
	withdrawals atomic.Uint64

	// torn flips when teardown runs. The protocol guarantees exactly one
	// Return observes the zero-crossing, so this is an assertion guard,
	// not a synchronization point.
	torn atomic.Bool

	// finalizer, when non-nil, runs exactly once during teardown with a
	// pointer to the value. Nil means the value needs no teardown beyond
	// garbage collection.
	finalizer func(*T)

	value T
}

// New allocates a cell owning the given value, with the shared counter
// holding one full initial weight block.
//
// The returned cell backs exactly one handle holding weight.Initial; the
// handle layer is responsible for creating it. Allocation failure is fatal
// by host convention (the Go runtime aborts on OOM), so New has no error
// path.
func New[T any](value T, finalizer func(*T)) *Cell[T] {
	c := &Cell[T]{
		finalizer: finalizer,
		value:     value,
	}
	c.shared.Store(uint64(weight.Initial))
	return c
}

// Value returns a pointer to the shared value.
//
// The pointee must be treated as read-only. The pointer stays valid exactly
// as long as the handle it was obtained through is live.
//
//go:nosplit
func (c *Cell[T]) Value() *T {
	return &c.value
}

// Withdraw adds one fresh weight block to the shared counter and returns
// the amount credited, which is always exactly weight.Withdrawal.
//
// This is the sole cross-goroutine synchronization point of the clone path.
// It runs an optimistic compare-and-swap loop: concurrent withdrawals may
// force a re-read and retry, but each retry is a handful of instructions
// and contention is rare by construction (a handle withdraws at most once
// per 16 clones).
//
// Withdraw panics if the counter cannot take another block without
// overflowing. That many simultaneously outstanding weight units is a
// violated scale assumption, not a recoverable condition.
//
// Thread Safety: safe for concurrent calls.
func (c *Cell[T]) Withdraw() weight.Weight {
	current := c.shared.Load()
	for {
		if !weight.CanWithdraw(weight.Weight(current)) {
			panic("warc: weight ceiling exceeded")
		}
		candidate := current + uint64(weight.Withdrawal)
		if c.shared.CompareAndSwap(current, candidate) {
			c.withdrawals.Add(1)
			return weight.Weight(candidate - current)
		}
		current = c.shared.Load()
	}
}

// Return pays a released handle's local weight back into the shared
// counter. It reports whether this call was the final release - the one
// that drove the counter to exactly zero - in which case the cell has
// already been torn down by the time Return returns.
//
// The zero-crossing test inspects the subtraction's own result: the
// atomic Add returns the new counter value, and a new value of zero means
// this caller subtracted the last outstanding weight. Monotonic
// non-negative subtraction guarantees exactly one caller sees it.
//
// Return panics if w exceeds the counter's current value. The weight
// invariant makes that impossible for a correctly used handle, so hitting
// it means a handle was released twice or with a forged weight.
//
// Thread Safety: safe for concurrent calls.
func (c *Cell[T]) Return(w weight.Weight) bool {
	if w == 0 {
		panic("warc: returning zero weight")
	}

	// Add of the two's complement subtracts w and yields the new value.
	remaining := c.shared.Add(^uint64(w - 1))

	// A new value above Max-w means the subtraction wrapped below zero.
	if remaining > uint64(weight.Max)-uint64(w) {
		panic("warc: weight over-released")
	}

	if remaining != 0 {
		return false
	}

	c.teardown()
	return true
}

// teardown runs the finalizer exactly once.
//
// Reached only from the Return that observed the zero-crossing, so the
// guard never actually fires; it exists to turn a protocol violation into
// a loud failure instead of a double teardown.
func (c *Cell[T]) teardown() {
	if !c.torn.CompareAndSwap(false, true) {
		panic("warc: cell torn down twice")
	}
	if c.finalizer != nil {
		c.finalizer(&c.value)
	}
}

// Weight returns the current shared counter value.
//
// Meaningful only at quiescent points; a concurrent clone or release can
// move the counter between the load and the caller's use of it.
// Diagnostics and testing only.
func (c *Cell[T]) Weight() weight.Weight {
	return weight.Weight(c.shared.Load())
}

// Withdrawals returns how many withdrawals have succeeded on this cell.
//
// Diagnostics and testing only.
func (c *Cell[T]) Withdrawals() uint64 {
	return c.withdrawals.Load()
}
