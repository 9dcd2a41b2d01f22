// delegate.go forwards value-level operations through a handle: formatting,
// equality, ordering and hashing all act on the shared value, never on the
// handle's own identity or weight. Two handles to equal values compare
// equal even when they share nothing.
package handle

import (
	"cmp"
	"fmt"
	"hash/maphash"
)

// String formats the shared value with the fmt default verb, so a Ref
// prints as its pointee.
func (r *Ref[T]) String() string {
	return fmt.Sprint(*r.live("String").Value())
}

// Format implements fmt.Formatter by replaying the caller's verb and flags
// against the shared value. %v, %+v, %#v, %d and friends all render the
// pointee exactly as they would render the value itself.
func (r *Ref[T]) Format(state fmt.State, verb rune) {
	fmt.Fprintf(state, fmt.FormatString(state, verb), *r.live("Format").Value())
}

// Equal reports whether two handles' shared values are equal. The handles
// may belong to the same cell or to different cells.
func Equal[T comparable](a, b *Ref[T]) bool {
	return *a.Value() == *b.Value()
}

// Compare orders two handles by their shared values, returning the usual
// -1, 0, +1.
func Compare[T cmp.Ordered](a, b *Ref[T]) int {
	return cmp.Compare(*a.Value(), *b.Value())
}

// Hash returns a seed-dependent hash of the shared value. Handles to equal
// values hash identically under the same seed, so a Ref can key hash-based
// containers by its pointee.
func Hash[T comparable](seed maphash.Seed, r *Ref[T]) uint64 {
	return maphash.Comparable(seed, *r.Value())
}
