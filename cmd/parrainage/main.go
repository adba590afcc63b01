// Command parrainage pairs mentors with mentees and manages the recorded
// sessions and generated reports.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yepeleya/projet-parrainage-aeistc/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
