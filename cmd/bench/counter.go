package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newCounterCmd() *cobra.Command {
	var (
		base string
		path string
		num  int
	)
	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Hit one resource N times concurrently and read back its counter",
		Long: `Run the server with RATE_LIMIT=0, once with USE_LOCK=1 and once with USE_LOCK=0.
The locked server reports exactly N hits; the naive one usually reports fewer.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			timeout, _ := cmd.Flags().GetDuration("timeout")
			client := newClient(timeout)
			base = strings.TrimRight(base, "/")
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}

			_, elapsed := burst(cmd.Context(), client, base+path, num)

			dir, entry := splitTarget(path)
			html, err := getBody(cmd.Context(), client, base+dir)
			if err != nil {
				return fmt.Errorf("fetch listing %s: %w", dir, err)
			}
			hits, ok := parseListingHits(html, entry)
			if !ok {
				return fmt.Errorf("entry %q not found in listing of %s", entry, dir)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d requests in %.3fs, counted hits=%d (expected %d)\n",
				path, num, elapsed.Seconds(), hits, num)
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "url", "http://127.0.0.1:8080", "server base URL")
	cmd.Flags().StringVar(&path, "path", "/books/", "resource to hit (directories end with /)")
	cmd.Flags().IntVarP(&num, "num", "n", 200, "concurrent requests")
	return cmd
}

// splitTarget devolve o diretório que lista o alvo e o nome da entrada nele.
func splitTarget(target string) (dir, entry string) {
	trimmed := strings.TrimSuffix(target, "/")
	cut := strings.LastIndex(trimmed, "/")
	dir = trimmed[:cut+1]
	entry = trimmed[cut+1:]
	if strings.HasSuffix(target, "/") && entry != "" {
		entry += "/"
	}
	return dir, entry
}

var rowPattern = regexp.MustCompile(`<a href="([^"]*)">[^<]*</a></td><td class='num'>(\d+)</td>`)

// parseListingHits procura a linha cujo href é entry e devolve o número de hits.
func parseListingHits(html, entry string) (int, bool) {
	for _, m := range rowPattern.FindAllStringSubmatch(html, -1) {
		if m[1] != entry {
			continue
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
