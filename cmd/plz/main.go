// Package main is the entry point for the plz CLI tool.
package main

import (
	"os"

	"github.com/plzcli/plz/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
