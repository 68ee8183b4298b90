// Package main provides the code-context command.
package main

import (
	"os"

	"github.com/welf/code-context/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
