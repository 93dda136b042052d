package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/q-sparc/sparc-chat/internal/adapters/driving/cli"
)

func main() {
	// API keys live in the environment; a local .env is a convenience for
	// development and its absence is not an error.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
