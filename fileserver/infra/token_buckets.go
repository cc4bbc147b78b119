package infra

import (
	"sync"
	"time"

	"concurrent-fileserver/fileserver/domain"

	"golang.org/x/time/rate"
)

// TokenBuckets é um admitter alternativo baseado em token-bucket (x/time/rate)
// com cache por cliente e limpeza periódica.
//
// Taxa = limit/window por segundo, burst = limit. Diferente da janela deslizante,
// não garante o limite em todo intervalo de duração window (só na média).
type TokenBuckets struct {
	mu           sync.Mutex
	entries      map[domain.ClientKey]*bucketEntry
	limit        int
	rps          rate.Limit
	idleTTL      time.Duration
	cleanupEvery time.Duration
}

type bucketEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

type TokenBucketsOption func(*TokenBuckets)

func WithIdleTTL(d time.Duration) TokenBucketsOption {
	return func(s *TokenBuckets) { s.idleTTL = d }
}

func WithCleanupEvery(d time.Duration) TokenBucketsOption {
	return func(s *TokenBuckets) { s.cleanupEvery = d }
}

func NewTokenBuckets(limit int, window time.Duration, opts ...TokenBucketsOption) *TokenBuckets {
	s := &TokenBuckets{
		entries:      make(map[domain.ClientKey]*bucketEntry),
		limit:        limit,
		idleTTL:      15 * time.Minute,
		cleanupEvery: 2 * time.Minute,
	}
	if limit > 0 && window > 0 {
		s.rps = rate.Limit(float64(limit) / window.Seconds())
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TokenBuckets) Limit() int   { return s.limit }
func (s *TokenBuckets) RPS() float64 { return float64(s.rps) }

// Admit implementa domain.Admitter.
func (s *TokenBuckets) Admit(key domain.ClientKey, now time.Time) bool {
	if s.limit <= 0 {
		return true
	}
	return s.limiter(key, now).AllowN(now, 1)
}

func (s *TokenBuckets) limiter(key domain.ClientKey, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(s.rps, s.limit)
	s.entries[key] = &bucketEntry{lim: lim, lastSeen: now}
	return lim
}

func (s *TokenBuckets) Cleanup(now time.Time) {
	cutoff := now.Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// StartJanitor inicia uma goroutine que limpa chaves inativas periodicamente.
// Pare cancelando o contexto.
func (s *TokenBuckets) StartJanitor(ctx DoneContext) {
	startJanitor(ctx, s.cleanupEvery, func() { s.Cleanup(time.Now()) })
}
