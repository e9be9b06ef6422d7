package main

import (
	"os"

	"github.com/siftbot/gh-sift/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
