package main

import (
	"os"

	"github.com/blackroad/energy-monitor/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
