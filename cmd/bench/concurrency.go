package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newConcurrencyCmd() *cobra.Command {
	var (
		urls []string
		num  int
		path string
	)
	cmd := &cobra.Command{
		Use:   "concurrency",
		Short: "Fire N concurrent GETs at each server and compare wall-clock time",
		Long: `Start one server normally and another with SEQUENTIAL=true (same DELAY_MS),
then pass both with --url. With DELAY_MS=100 and -n 10 the concurrent server
should finish in ~0.1s and the sequential one in ~1s.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			timeout, _ := cmd.Flags().GetDuration("timeout")
			client := newClient(timeout)
			out := cmd.OutOrStdout()

			for _, base := range urls {
				target := strings.TrimRight(base, "/") + path
				statuses, elapsed := burst(cmd.Context(), client, target, num)
				fmt.Fprintf(out, "%s: %d concurrent requests in %.4fs (%s)\n",
					base, num, elapsed.Seconds(), summarize(statuses))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&urls, "url", []string{"http://127.0.0.1:8080"}, "server base URL (repeatable)")
	cmd.Flags().IntVarP(&num, "num", "n", 10, "concurrent requests")
	cmd.Flags().StringVar(&path, "path", "/", "path to request")
	return cmd
}

// summarize agrupa status como "200x9 429x1".
func summarize(statuses []int) string {
	counts := map[int]int{}
	var order []int
	for _, s := range statuses {
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}
	parts := make([]string, 0, len(order))
	for _, s := range order {
		parts = append(parts, fmt.Sprintf("%dx%d", s, counts[s]))
	}
	return strings.Join(parts, " ")
}
