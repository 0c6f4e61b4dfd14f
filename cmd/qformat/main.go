// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Command qformat quantizes numbers to binary fixed-point formats.
package main

import (
	"fmt"
	"os"

	"github.com/avdva/qformat/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
