// main is the entry point for the engram CLI.
package main

import (
	"fmt"
	"os"

	"github.com/engramdev/engram/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
