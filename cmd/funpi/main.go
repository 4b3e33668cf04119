package main

import (
	"os"

	"github.com/funvibe/funpi/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
