// Command soulc is the Soul compiler frontend's CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/soullang/soulc/cmd/soulc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
