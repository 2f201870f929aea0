package main

import (
	"fmt"
	"os"

	"github.com/regstack-io/regstack/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
