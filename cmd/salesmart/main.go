// Package main is the entry point for salesmart.
package main

import (
	"fmt"
	"os"

	"salesmart/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
