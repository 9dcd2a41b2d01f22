// Package cell implements the shared cell of a weighted reference count.
//
// A Cell is the single heap block every handle to one value points at. It
// holds the value itself and the shared weight counter: the total of all
// ownership claims currently outstanding across handles.
//
// # Overview
//
// The cell exposes exactly two mutations of the shared counter, matching the
// two halves of the weight-accounting protocol:
//
//   - Withdraw: a compare-and-swap loop that adds a fresh weight block to the
//     counter and credits it to the calling handle. This is the only
//     cross-goroutine read-modify-write on the clone path, and it only runs
//     when a handle's local weight has run down to 1.
//
//   - Return: a single atomic subtraction that pays a released handle's local
//     weight back into the counter. The subtraction that drives the counter
//     to exactly zero is the final release; that caller - and only that
//     caller - tears the cell down.
//
// # Invariants
//
// At every quiescent point (no clone or release mid-flight) the shared
// counter equals the sum of all live handles' local weights. The counter
// grows only via Withdraw (by exactly weight.Withdrawal per success) and
// shrinks only via Return. It is never observed negative: a Return that
// would underflow is an over-release bug and panics.
//
// # Memory Ordering
//
// The protocol needs release ordering on the subtraction and an acquire
// fence before teardown so the final release observes every other handle's
// prior effects. Go's sync/atomic operations are sequentially consistent,
// strictly stronger than both, so Return's single atomic Add carries the
// whole obligation and no separate fence exists.
//
// # Thread Safety
//
// All Cell methods are safe for concurrent use by multiple goroutines.
// The value is shared read-only; the cell never mutates it and callers
// must not either.
package cell
