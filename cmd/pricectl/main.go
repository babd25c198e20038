// Package main is the entry point for pricectl, the print pricing operations CLI.
package main

import (
	"os"

	"github.com/guttosm/print-pricing-service/cmd/pricectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
