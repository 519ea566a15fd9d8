package main

import (
	"os"

	"github.com/Egor213/LogParser/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
