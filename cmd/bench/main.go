// Command bench reproduz as demonstrações do servidor: concorrência vs baseline
// sequencial, corrida nos contadores e rate limit por IP.
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
		Use:           "bench",
		Short:         "Benchmarks and demos for the concurrent file server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Duration("timeout", defaultTimeout, "per-request timeout")

	root.AddCommand(newConcurrencyCmd(), newCounterCmd(), newRateLimitCmd())
	return root
}
