package main

import (
	"context"
	"fmt"
	"os"

	"github.com/droidship/droidship/internal/cli"
	"github.com/droidship/droidship/internal/clix"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runCLI builds the root command and executes it with the given argv.
func runCLI(args []string) error {
	app := cli.New(clix.NewEnv())
	return app.Run(context.Background(), args)
}
