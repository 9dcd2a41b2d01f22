// info.go implements the 'warc info' command.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/mod/semver"

	"github.com/kolkov/warc/warc"
)

// versionString returns the linked runtime version in semver form.
func versionString() string {
	return "v" + warc.Version
}

// infoCommand implements the 'warc info' command.
//
// It prints the linked runtime's information. With -min it additionally
// acts as a version gate for scripts: the process exits non-zero when the
// linked runtime is older than the required version.
//
// Example:
//
//	warc info
//	warc info -min v0.1.0
func infoCommand(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	minVersion := fs.String("min", "", "fail unless the runtime is at least this semver version")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	info := warc.GetInfo()
	fmt.Printf("warc runtime %s\n", versionString())
	fmt.Printf("  algorithm:      %s\n", info.Algorithm)
	fmt.Printf("  initial weight: %d\n", info.InitialWeight)

	if *minVersion == "" {
		return
	}

	if !semver.IsValid(*minVersion) {
		fmt.Fprintf(os.Stderr, "Error: -min %q is not a valid semver version (expected e.g. v0.1.0)\n", *minVersion)
		os.Exit(1)
	}
	if semver.Compare(versionString(), *minVersion) < 0 {
		fmt.Fprintf(os.Stderr, "Error: runtime %s is older than required %s\n", versionString(), *minVersion)
		os.Exit(1)
	}
	fmt.Printf("  version gate:   %s >= %s OK\n", versionString(), *minVersion)
}
