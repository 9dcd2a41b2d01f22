//go:build ignore
// +build ignore

// This tool prints the weight decay table for the configured initial
// weight: the local weight a handle holds after each successive clone of
// the same handle, and the point where the next clone must withdraw a
// fresh block from the shared counter.
// Run with: go run tools/weight_table.go
package main

import "fmt"

const initialWeight = 1 << 16

func main() {
	fmt.Printf("initial weight: %d\n\n", initialWeight)
	fmt.Println("clones of one handle | local weight | shared RMW on next clone")
	fmt.Println("---------------------|--------------|--------------------------")

	w := uint64(initialWeight)
	for i := 0; ; i++ {
		rmw := "none (halve)"
		if w == 1 {
			rmw = fmt.Sprintf("1 CAS (withdraw %d)", uint64(initialWeight)-1)
		}
		fmt.Printf("%20d | %12d | %s\n", i, w, rmw)
		if w == 1 {
			break
		}
		w >>= 1
	}

	fmt.Println()
	fmt.Printf("a handle withdraws at most once per %d clones of itself\n", 16)
	fmt.Printf("counter after first withdrawal: %d\n", uint64(initialWeight)*2-1)
}
