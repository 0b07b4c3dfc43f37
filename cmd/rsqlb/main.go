// Command rsqlb renders declarative query definitions into RSQL filter
// strings.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/rsqlb/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rsqlb: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
