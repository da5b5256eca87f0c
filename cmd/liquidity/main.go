package main

import (
	"os"

	"github.com/rustyeddy/liquidity/cmd/liquidity/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
