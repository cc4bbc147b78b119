package main

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultTimeout = 100 * time.Second

// get faz um GET e devolve o status; -1 em erro de transporte.
func get(ctx context.Context, client *http.Client, url string) int {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return -1
	}
	resp, err := client.Do(req)
	if err != nil {
		return -1
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

func getBody(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	return string(b), err
}

// burst dispara n GETs ao mesmo tempo e devolve os status e o tempo total.
func burst(ctx context.Context, client *http.Client, url string, n int) ([]int, time.Duration) {
	statuses := make([]int, n)
	start := make(chan struct{})

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			<-start
			statuses[i] = get(ctx, client, url)
			return nil
		})
	}

	t0 := time.Now()
	close(start)
	_ = g.Wait()
	return statuses, time.Since(t0)
}

// newClient desliga keep-alive: o servidor fecha toda conexão mesmo.
func newClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DisableKeepAlives: true,
			Proxy:             http.ProxyFromEnvironment,
		},
	}
}
