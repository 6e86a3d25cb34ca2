// Package main is the entry point for the entreview CLI binary.
package main

import (
	"os"

	cli "access-review/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
