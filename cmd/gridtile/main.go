// Command gridtile tiles widget scenes onto grids.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtile/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var verbose, quiet bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log placement and tiling details")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// The level is only known once flags are parsed.
	setup := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		switch {
		case verbose:
			c.SetLogLevel(cli.LogDebug)
		case quiet:
			c.SetLogLevel(cli.LogWarn)
		}
		return setup(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
