// Package main is matchctl, a command-line client that keeps a working search
// filter and saved presets on disk and runs searches against the API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// version is set at build time through linker flags.
var version = "dev"

func main() {
	// A missing .env file is fine; flags and the environment still apply.
	_ = godotenv.Load()

	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "matchctl:", err)
		os.Exit(1)
	}
}
