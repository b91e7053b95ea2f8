package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "corebook",
		Short: "A single-pair limit order book matching engine",
	}
	root.AddCommand(newRunCmd(), newBenchCmd())
	return root
}
