package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type tally struct {
	ok, blocked int
}

func newRateLimitCmd() *cobra.Command {
	var (
		base         string
		duration     time.Duration
		politeRPS    float64
		spamInterval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "ratelimit",
		Short: "Run a spammer and a polite client side by side and count 429s",
		Long: `Both clients share the same address, so the polite one only stays clean
when it runs from another host or when the spammer is pointed elsewhere.
Start the server with RATE_LIMIT=5 WINDOW_SEC=1 for the classic demo.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			timeout, _ := cmd.Flags().GetDuration("timeout")
			client := newClient(timeout)
			url := base + "/"

			ctx, cancel := context.WithTimeout(cmd.Context(), duration)
			defer cancel()

			var spam, polite tally
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				spam = hammer(gctx, client, url, rate.NewLimiter(rate.Every(spamInterval), 1))
				return nil
			})
			g.Go(func() error {
				polite = hammer(gctx, client, url, rate.NewLimiter(rate.Limit(politeRPS), 1))
				return nil
			})
			_ = g.Wait()

			secs := duration.Seconds()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Spammer: %d OK, %d blocked (avg %.1f OK/s)\n", spam.ok, spam.blocked, float64(spam.ok)/secs)
			fmt.Fprintf(out, "Polite:  %d OK, %d blocked (avg %.1f OK/s)\n", polite.ok, polite.blocked, float64(polite.ok)/secs)
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "url", "http://127.0.0.1:8080", "server base URL")
	cmd.Flags().DurationVarP(&duration, "duration", "d", 10*time.Second, "test duration")
	cmd.Flags().Float64Var(&politeRPS, "polite-rps", 4, "polite client requests per second")
	cmd.Flags().DurationVar(&spamInterval, "spam-interval", 10*time.Millisecond, "spammer pause between requests")
	return cmd
}

// hammer faz GETs no ritmo do limiter até ctx encerrar.
func hammer(ctx context.Context, client *http.Client, url string, pace *rate.Limiter) tally {
	var t tally
	for {
		if err := pace.Wait(ctx); err != nil {
			return t
		}
		switch get(ctx, client, url) {
		case http.StatusOK:
			t.ok++
		case http.StatusTooManyRequests:
			t.blocked++
		}
	}
}
