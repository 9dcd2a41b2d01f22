// Package weight implements the weight arithmetic for weighted reference counting.
//
// Weight is an abstract unit of ownership claim over a shared cell. The cell
// carries one shared counter holding the total outstanding claims; every live
// handle privately holds the portion it may unilaterally return. Cloning a
// handle splits its portion in half, so the shared counter is untouched until
// a handle's portion runs down to 1 and a fresh block must be withdrawn.
//
// This encoding enables O(1) lock-free handle duplication which is the
// foundation of warc's performance (a clone is one shift and one store in
// the common case).
package weight

import "strconv"

// Weight is a machine-word weight value.
//
// A live handle's local weight is always an exact power of two in
// [1, Initial]. The shared counter is a plain sum of local weights and is
// only ever a Weight-typed uint64.
type Weight uint64

const (
	// Initial is the weight a freshly created handle holds, and the value
	// the shared counter starts at. It is a power of two large enough that
	// duplication almost never has to touch the shared counter: a handle
	// can be cloned 16 times before its local weight reaches 1.
	//
	// Trade-off: a larger Initial makes withdrawals rarer but leaves more
	// weight stranded on the counter after a withdrawal batch's last handle
	// is released. 1<<16 keeps 16 free halvings per withdrawal.
	Initial Weight = 1 << 16

	// Withdrawal is the amount added to the shared counter when a handle
	// with local weight 1 is cloned. The withdrawing handle's local weight
	// becomes 1 + Withdrawal == Initial, restoring the power-of-two shape.
	Withdrawal Weight = Initial - 1

	// Max is the ceiling of the shared counter. Reaching it means
	// Max/Initial withdrawal batches are outstanding simultaneously,
	// which is unreachable in practice.
	Max Weight = ^Weight(0)
)

// Halve splits a weight losslessly in two.
//
// Valid weights are even except when equal to 1, so the shift never loses
// a unit. Called on every clone - must be inline-candidate.
//
//go:nosplit
func (w Weight) Halve() Weight {
	return w >> 1
}

// Valid reports whether w is a legal local weight: an exact power of two
// in [1, Initial]. This is the per-handle invariant the clone and release
// protocols preserve.
//
//go:nosplit
func (w Weight) Valid() bool {
	return w >= 1 && w <= Initial && w&(w-1) == 0
}

// CanWithdraw reports whether a withdrawal on top of the given shared
// counter value stays within the counter's range.
//
// A false result means the scale assumption behind weighted counting is
// violated; callers treat it as a fatal assertion, not an error path.
//
//go:nosplit
func CanWithdraw(current Weight) bool {
	return current <= Max-Withdrawal
}

// String returns the decimal representation of the weight.
//
// Used for debugging and the stress tool's reports, not on hot paths.
func (w Weight) String() string {
	return strconv.FormatUint(uint64(w), 10)
}
