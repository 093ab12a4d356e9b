package main

import (
	"fmt"
	"os"
)

func main() {
	c := newCLI(os.Stderr)
	if err := c.rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
