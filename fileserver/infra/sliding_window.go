package infra

import (
	"sync"
	"time"

	"concurrent-fileserver/fileserver/domain"
)

// SlidingWindow admite no máximo `limit` requisições por cliente em qualquer
// intervalo de duração `window`.
//
// Um único mutex protege o mapa de buckets; evict-check-append acontece
// inteiro dentro dele.
type SlidingWindow struct {
	mu           sync.Mutex
	buckets      map[domain.ClientKey][]time.Time
	limit        int
	window       time.Duration
	cleanupEvery time.Duration
}

type SlidingWindowOption func(*SlidingWindow)

func WithWindowCleanupEvery(d time.Duration) SlidingWindowOption {
	return func(s *SlidingWindow) { s.cleanupEvery = d }
}

func NewSlidingWindow(limit int, window time.Duration, opts ...SlidingWindowOption) *SlidingWindow {
	s := &SlidingWindow{
		buckets:      make(map[domain.ClientKey][]time.Time),
		limit:        limit,
		window:       window,
		cleanupEvery: time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SlidingWindow) Limit() int            { return s.limit }
func (s *SlidingWindow) Window() time.Duration { return s.window }

// Admit implementa domain.Admitter.
//
// Timestamps com t <= now-window saem do bucket antes da contagem: um registro
// exatamente na borda já não conta.
func (s *SlidingWindow) Admit(key domain.ClientKey, now time.Time) bool {
	if s.limit <= 0 {
		return true
	}
	cutoff := now.Add(-s.window)

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := evict(s.buckets[key], cutoff)
	if len(bucket) >= s.limit {
		s.buckets[key] = bucket
		return false
	}
	s.buckets[key] = append(bucket, now)
	return true
}

// evict descarta os timestamps fora da janela. Não assume ordem: dois handlers
// podem ler o relógio numa ordem e entrar no mutex na outra.
func evict(bucket []time.Time, cutoff time.Time) []time.Time {
	kept := 0
	for _, ts := range bucket {
		if ts.After(cutoff) {
			kept++
		}
	}
	if kept == len(bucket) {
		return bucket
	}
	// copia para não segurar o array antigo indefinidamente
	out := make([]time.Time, 0, kept)
	for _, ts := range bucket {
		if ts.After(cutoff) {
			out = append(out, ts)
		}
	}
	return out
}

// Len devolve quantos timestamps o cliente tem retidos (sem evict).
func (s *SlidingWindow) Len(key domain.ClientKey) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets[key])
}

// Clients devolve quantos clientes possuem bucket.
func (s *SlidingWindow) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

// Cleanup remove buckets que ficaram sem nenhum timestamp dentro da janela.
func (s *SlidingWindow) Cleanup(now time.Time) {
	cutoff := now.Add(-s.window)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, bucket := range s.buckets {
		if len(evict(bucket, cutoff)) == 0 {
			delete(s.buckets, k)
		}
	}
}

// StartJanitor inicia uma goroutine que limpa clientes inativos periodicamente.
// Pare cancelando o contexto.
func (s *SlidingWindow) StartJanitor(ctx DoneContext) {
	startJanitor(ctx, s.cleanupEvery, func() { s.Cleanup(time.Now()) })
}
