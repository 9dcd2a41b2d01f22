// Package main implements the warc CLI tool.
//
// The warc tool exercises and inspects the weighted reference counting
// runtime. It is the development companion of the library:
//
//  1. Stress the clone/release protocol from many goroutines
//  2. Verify the weight invariant at the quiescent end of a run
//  3. Report withdrawal and teardown statistics
//
// Usage:
//
//	warc stress -goroutines 8 -iters 10000   # hammer the protocol
//	warc stress -json                        # machine-readable report
//	warc info -min v0.1.0                    # runtime info + version gate
//
// This is the CLI entry point for the standalone warc tool.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "stress":
		stressCommand(os.Args[2:])
	case "info":
		infoCommand(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("warc version %s\n", versionString())
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`warc - Weighted Atomic Reference Counting Tool

USAGE:
    warc <command> [arguments]

COMMANDS:
    stress     Run a concurrent clone/release stress round and verify invariants
    info       Show runtime information (optionally gate on a minimum version)
    version    Show version information
    help       Show this help message

EXAMPLES:
    # Default stress round (8 goroutines)
    warc stress

    # Heavier round with a JSON report
    warc stress -goroutines 32 -iters 20000 -depth 24 -json

    # Print runtime info
    warc info

    # Fail unless the linked runtime is at least v0.1.0
    warc info -min v0.1.0

ABOUT:
    warc implements weighted reference counting: cloning a shared handle
    splits the handle's private weight instead of touching the shared
    counter, so the common-case clone performs no cross-goroutine atomic
    operation. The stress command drives the protocol hard and checks the
    governing invariant afterwards: the shared counter must equal the sum
    of the surviving handles' local weights, and the cell must be torn
    down exactly once.

FOR MORE INFORMATION:
    Repository: https://github.com/kolkov/warc
    Documentation: https://pkg.go.dev/github.com/kolkov/warc/warc

`)
}
