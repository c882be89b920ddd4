package main

import (
	"fmt"
	"os"

	"pet-plates/internal/cli"
)

func main() {
	if err := cli.RootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "recipes: %v\n", err)
		os.Exit(1)
	}
}
