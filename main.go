package main

import (
	"os"

	"github.com/bigfeelings/bigfeelings/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
