// stress.go implements the 'warc stress' command.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/kolkov/warc/warc"
)

var jsonConfig = jsoniter.Config{
	EscapeHTML:    false,
	IndentionStep: 2,
}.Froze()

// stressConfig holds the parsed flags of one stress round.
type stressConfig struct {
	// Goroutines is the number of concurrent workers. Each worker owns
	// its own handle cloned from the root before launch.
	Goroutines int

	// Iters is the number of clone bursts each worker performs.
	Iters int

	// Depth is the number of nested clones per burst. Values above 16
	// force withdrawals on every burst, keeping the CAS path hot.
	Depth int

	// JSON selects the machine-readable report.
	JSON bool
}

// stressReport is the outcome of one stress round.
//
// InvariantOK is the headline: at the quiescent end of the round, with
// only the root handle surviving, the shared counter must equal the
// root's local weight; and after the root's release the cell must have
// been torn down exactly once.
type stressReport struct {
	Goroutines   int           `json:"goroutines"`
	Iters        int           `json:"iters"`
	Depth        int           `json:"depth"`
	Clones       uint64        `json:"clones"`
	Withdrawals  uint64        `json:"withdrawals"`
	RootWeight   uint64        `json:"root_weight"`
	SharedWeight uint64        `json:"shared_weight"`
	Teardowns    int32         `json:"teardowns"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	InvariantOK  bool          `json:"invariant_ok"`
}

// stressCommand implements the 'warc stress' command.
//
// It runs one stress round and prints the report; a failed invariant is a
// non-zero exit.
func stressCommand(args []string) {
	fs := flag.NewFlagSet("stress", flag.ExitOnError)
	cfg := stressConfig{}
	fs.IntVar(&cfg.Goroutines, "goroutines", 8, "concurrent workers")
	fs.IntVar(&cfg.Iters, "iters", 5000, "clone bursts per worker")
	fs.IntVar(&cfg.Depth, "depth", 20, "nested clones per burst")
	fs.BoolVar(&cfg.JSON, "json", false, "emit a JSON report")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if cfg.Goroutines < 1 || cfg.Iters < 1 || cfg.Depth < 1 {
		fmt.Fprintln(os.Stderr, "Error: -goroutines, -iters and -depth must be positive")
		os.Exit(1)
	}

	report := runStress(cfg)

	if cfg.JSON {
		out, err := jsonConfig.Marshal(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	} else {
		printReport(report)
	}

	if !report.InvariantOK {
		fmt.Fprintln(os.Stderr, "Error: weight invariant violated")
		os.Exit(1)
	}
}

// runStress drives one full stress round: fan out workers, churn clones,
// join, check the quiescent invariant, release the root, check teardown.
func runStress(cfg stressConfig) stressReport {
	var (
		teardowns atomic.Int32
		clones    atomic.Uint64
	)

	type payload struct {
		Marker uint64
	}
	const marker = 0xCAFEBABE

	root := warc.NewWithFinalizer(payload{Marker: marker}, func(*payload) {
		teardowns.Add(1)
	})

	// Workers get their handles before launch: a single Ref is never
	// shared between goroutines.
	seeds := make([]*warc.Ref[payload], cfg.Goroutines)
	for i := range seeds {
		seeds[i] = root.Clone()
	}

	start := time.Now()
	var wg sync.WaitGroup
	for _, seed := range seeds {
		wg.Add(1)
		go func(mine *warc.Ref[payload]) {
			defer wg.Done()
			defer mine.Release()
			nested := make([]*warc.Ref[payload], 0, cfg.Depth)
			for i := 0; i < cfg.Iters; i++ {
				nested = nested[:0]
				for d := 0; d < cfg.Depth; d++ {
					nested = append(nested, mine.Clone())
				}
				clones.Add(uint64(cfg.Depth))
				for _, n := range nested {
					if n.Value().Marker != marker {
						panic("warc stress: payload corrupted")
					}
					n.Release()
				}
			}
		}(seed)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// Quiescent: only the root survives, so the counter must hold
	// exactly its weight, and nothing may have been torn down yet.
	report := stressReport{
		Goroutines:   cfg.Goroutines,
		Iters:        cfg.Iters,
		Depth:        cfg.Depth,
		Clones:       clones.Load() + uint64(cfg.Goroutines),
		Withdrawals:  root.Withdrawals(),
		RootWeight:   root.LocalWeight(),
		SharedWeight: root.SharedWeight(),
		Elapsed:      elapsed,
	}
	quiescentOK := report.SharedWeight == report.RootWeight && teardowns.Load() == 0

	root.Release()
	report.Teardowns = teardowns.Load()
	report.InvariantOK = quiescentOK && report.Teardowns == 1

	return report
}

func printReport(r stressReport) {
	fmt.Printf("warc stress: %d goroutines x %d iters x depth %d\n",
		r.Goroutines, r.Iters, r.Depth)
	fmt.Printf("  clones:       %d (%.0f/s)\n",
		r.Clones, float64(r.Clones)/r.Elapsed.Seconds())
	fmt.Printf("  withdrawals:  %d\n", r.Withdrawals)
	fmt.Printf("  root weight:  %d (shared %d at quiescence)\n",
		r.RootWeight, r.SharedWeight)
	fmt.Printf("  teardowns:    %d\n", r.Teardowns)
	fmt.Printf("  elapsed:      %s\n", r.Elapsed)
	if r.InvariantOK {
		fmt.Println("  invariant:    OK")
	} else {
		fmt.Println("  invariant:    VIOLATED")
	}
}
