package main

import (
	"os"
)

func main() {
	// cobra reports the error on stderr itself
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
