// Package warc public API.
//
// See doc.go for detailed documentation and examples.
package warc

import (
	"cmp"
	"hash/maphash"

	"github.com/kolkov/warc/internal/warc/handle"
	"github.com/kolkov/warc/internal/warc/weight"
)

// Ref is one owner's handle on a shared value.
//
// Obtain the first Ref from [New] or [NewWithFinalizer] and further ones
// from Clone. Every Ref must be released exactly once:
//
//	ref := other.Clone()
//	defer ref.Release()
//
// A Ref is single-owner: never use one Ref from two goroutines at once.
// Distinct Refs sharing a value are fully concurrent-safe.
type Ref[T any] = handle.Ref[T]

// InitialWeight is the weight a freshly created handle holds. A handle can
// be cloned 16 times (halving each time) before a clone has to touch the
// shared counter.
const InitialWeight = uint64(weight.Initial)

// New allocates a shared cell owning value and returns its first handle.
//
// The value is shared read-only among all handles and is reclaimed by the
// garbage collector after the last handle is released.
//
// Example:
//
//	ref := warc.New(myLargeLookupTable)
//	defer ref.Release()
func New[T any](value T) *Ref[T] {
	return handle.New(value)
}

// NewWithFinalizer is [New] with a teardown hook. The finalizer runs
// exactly once, inside the Release call that drops the last handle, with a
// pointer to the shared value. Use it when the value holds resources the
// garbage collector cannot reclaim:
//
//	ref := warc.NewWithFinalizer(conn, func(c *net.Conn) { (*c).Close() })
func NewWithFinalizer[T any](value T, finalizer func(*T)) *Ref[T] {
	return handle.NewWithFinalizer(value, finalizer)
}

// Equal reports whether two handles' shared values are equal, regardless
// of whether the handles share a cell.
func Equal[T comparable](a, b *Ref[T]) bool {
	return handle.Equal(a, b)
}

// Compare orders two handles by their shared values, returning -1, 0
// or +1.
func Compare[T cmp.Ordered](a, b *Ref[T]) int {
	return handle.Compare(a, b)
}

// Hash returns a seed-dependent hash of the handle's shared value.
// Handles to equal values hash identically under the same seed.
func Hash[T comparable](seed maphash.Seed, r *Ref[T]) uint64 {
	return handle.Hash(seed, r)
}
