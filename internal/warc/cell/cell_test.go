package cell

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/warc/internal/warc/weight"
)

func TestNewStartsAtInitialWeight(t *testing.T) {
	c := New(42, nil)

	assert.Equal(t, weight.Initial, c.Weight())
	assert.Equal(t, uint64(0), c.Withdrawals())
	assert.Equal(t, 42, *c.Value())
}

func TestWithdrawCreditsOneBlock(t *testing.T) {
	c := New("x", nil)

	credited := c.Withdraw()

	assert.Equal(t, weight.Withdrawal, credited)
	assert.Equal(t, weight.Initial+weight.Withdrawal, c.Weight())
	assert.Equal(t, uint64(1), c.Withdrawals())
}

func TestReturnPartialKeepsCellAlive(t *testing.T) {
	torn := false
	c := New("x", func(*string) { torn = true })

	final := c.Return(weight.Initial.Halve())

	assert.False(t, final)
	assert.False(t, torn)
	assert.Equal(t, weight.Initial.Halve(), c.Weight())
}

func TestReturnFinalRunsTeardownOnce(t *testing.T) {
	var teardowns int
	c := New([]int{1, 2, 3}, func(v *[]int) {
		teardowns++
		*v = nil
	})

	final := c.Return(weight.Initial)

	require.True(t, final)
	require.Equal(t, 1, teardowns)
	assert.Equal(t, weight.Weight(0), c.Weight())
}

func TestReturnFinalNilFinalizer(t *testing.T) {
	c := New(7, nil)
	require.True(t, c.Return(weight.Initial))
}

func TestOverReleasePanics(t *testing.T) {
	c := New(0, nil)

	assert.Panics(t, func() {
		c.Return(weight.Initial + 1)
	})
}

func TestReturnZeroWeightPanics(t *testing.T) {
	c := New(0, nil)

	assert.Panics(t, func() {
		c.Return(0)
	})
}

// TestConcurrentWithdrawReturn hammers the two shared-counter mutations from
// many goroutines and checks the counter balances exactly afterwards.
func TestConcurrentWithdrawReturn(t *testing.T) {
	const (
		goroutines = 8
		iters      = 2000
	)

	var teardowns atomic.Int32
	c := New("shared", func(*string) { teardowns.Add(1) })

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				credited := c.Withdraw()
				if c.Return(credited) {
					t.Error("withdrawn weight alone must never be the final release")
					return
				}
			}
		}()
	}
	wg.Wait()

	// Every withdrawal was paid back, so only the initial block remains.
	require.Equal(t, weight.Initial, c.Weight())
	require.Equal(t, uint64(goroutines*iters), c.Withdrawals())
	require.Equal(t, int32(0), teardowns.Load())

	// Returning the initial block is the final release.
	require.True(t, c.Return(weight.Initial))
	require.Equal(t, int32(1), teardowns.Load())
}

// TestConcurrentFinalRelease splits the initial block across goroutines and
// verifies exactly one of the racing returns tears the cell down.
func TestConcurrentFinalRelease(t *testing.T) {
	const parts = 16 // Initial is a power of two, so this divides evenly.

	var teardowns atomic.Int32
	var finals atomic.Int32
	c := New(struct{}{}, func(*struct{}) { teardowns.Add(1) })

	share := weight.Initial / parts
	var wg sync.WaitGroup
	for g := 0; g < parts; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Return(share) {
				finals.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), finals.Load())
	require.Equal(t, int32(1), teardowns.Load())
	require.Equal(t, weight.Weight(0), c.Weight())
}

func BenchmarkWithdrawReturn(b *testing.B) {
	c := New(0, nil)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Return(c.Withdraw())
	}
}
