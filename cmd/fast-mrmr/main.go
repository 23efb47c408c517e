// Command fast-mrmr selects features from a discretized dataset file with the
// mRMR criterion and prints their 0-based indices in selection order.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
