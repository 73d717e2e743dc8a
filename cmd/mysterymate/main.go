// Package main provides the mysterymate console: a hot-seat referee for
// horcrux chess, two players sharing one keyboard.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
