// Command allot prints the optimal number of satisfied requesters for the
// instance on stdin (or --input), or -1.
package main

import (
	"os"

	"github.com/katalvlaran/allot/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
