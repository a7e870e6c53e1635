package main

import (
	"fmt"
	"os"

	"github.com/rustyeddy/swingtrader/cmd/swingtrader/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
