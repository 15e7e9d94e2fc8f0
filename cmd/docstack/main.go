package main

import (
	"os"

	"github.com/docstack-dev/docstack/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
