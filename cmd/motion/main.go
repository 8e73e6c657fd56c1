// Command motion is the companion CLI for the motion animation engine.
package main

import (
	"fmt"
	"os"

	"github.com/go-motion/motion/cmd/motion/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
