// Command rbparse lexes and parses Ruby-style source from the CLI, for
// debugging the scanner and recognizer and for golden-snapshot testing
// of the produced token stream / AST.
package main

import (
	"fmt"
	"os"

	"github.com/scriptlex/rbparse/cmd/rbparse/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
