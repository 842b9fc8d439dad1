// Command ls-astrotool computes positions, rise/set times and airmass of
// stars and solar-system bodies for an observing site.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
