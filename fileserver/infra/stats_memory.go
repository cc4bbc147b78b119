package infra

import (
	"context"
	"sync"

	"concurrent-fileserver/fileserver/domain"
)

type Counters struct {
	Allowed int64
	Denied  int64
}

// MemoryStats é uma implementação simples em memória.
// Guarda decisões de admissão (total e por cliente) e acessos por recurso.
//
// Não faz expiração.
type MemoryStats struct {
	mu       sync.Mutex
	total    Counters
	byClient map[domain.ClientKey]Counters
	hits     map[domain.ResourceKey]int64

	trackClients bool
}

type MemoryStatsOption func(*MemoryStats)

func WithTrackClients(track bool) MemoryStatsOption {
	return func(s *MemoryStats) { s.trackClients = track }
}

func NewMemoryStats(opts ...MemoryStatsOption) *MemoryStats {
	s := &MemoryStats{
		byClient: make(map[domain.ClientKey]Counters),
		hits:     make(map[domain.ResourceKey]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStats) Record(_ context.Context, ev domain.StatsEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.Kind == domain.EventHit {
		s.hits[ev.Resource]++
		return nil
	}

	if ev.Allowed {
		s.total.Allowed++
	} else {
		s.total.Denied++
	}
	if s.trackClients {
		c := s.byClient[ev.Client]
		if ev.Allowed {
			c.Allowed++
		} else {
			c.Denied++
		}
		s.byClient[ev.Client] = c
	}
	return nil
}

func (s *MemoryStats) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryStats) ByClient() map[domain.ClientKey]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.ClientKey]Counters, len(s.byClient))
	for k, v := range s.byClient {
		out[k] = v
	}
	return out
}

func (s *MemoryStats) Hits() map[domain.ResourceKey]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[domain.ResourceKey]int64, len(s.hits))
	for k, v := range s.hits {
		out[k] = v
	}
	return out
}
