// Package main is the entry point for the minidb CLI binary.
package main

import (
	"os"

	cli "minidb/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
