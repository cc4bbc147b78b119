package infra

import (
	"sync"
	"time"

	"concurrent-fileserver/fileserver/domain"
)

// NewHitCounter devolve o contador da disciplina pedida.
// gap é a pausa artificial entre leitura e escrita (0 desliga).
func NewHitCounter(d domain.Discipline, gap time.Duration) domain.HitCounter {
	if d == domain.Naive {
		return NewNaiveHits(gap)
	}
	return NewLockedHits(gap)
}

// LockedHits incrementa sob mutex: ler, (opcionalmente) esperar, escrever,
// tudo sem soltar o lock. Snapshot usa o mesmo lock.
type LockedHits struct {
	mu   sync.Mutex
	hits map[domain.ResourceKey]int
	gap  time.Duration
}

func NewLockedHits(gap time.Duration) *LockedHits {
	return &LockedHits{hits: make(map[domain.ResourceKey]int), gap: gap}
}

func (c *LockedHits) Increment(key domain.ResourceKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.hits[key]
	if c.gap > 0 {
		time.Sleep(c.gap)
	}
	c.hits[key] = cur + 1
}

func (c *LockedHits) Snapshot() map[domain.ResourceKey]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[domain.ResourceKey]int, len(c.hits))
	for k, v := range c.hits {
		out[k] = v
	}
	return out
}

// NaiveHits é o contador propositalmente racy: lê o valor, cede a execução
// durante gap sem nenhuma exclusão e grava leitura+1. Incrementos concorrentes
// na mesma chave se sobrescrevem (lost update).
//
// O sync.Map só impede que o runtime aborte por escrita concorrente em map;
// cada Load/Store é isolado, o read-modify-write não.
type NaiveHits struct {
	hits sync.Map // domain.ResourceKey -> int
	gap  time.Duration
}

func NewNaiveHits(gap time.Duration) *NaiveHits {
	return &NaiveHits{gap: gap}
}

func (c *NaiveHits) Increment(key domain.ResourceKey) {
	cur := 0
	if v, ok := c.hits.Load(key); ok {
		cur = v.(int)
	}
	if c.gap > 0 {
		time.Sleep(c.gap)
	}
	c.hits.Store(key, cur+1)
}

// Snapshot lê sem lock: pode observar o mapa no meio de uma atualização.
func (c *NaiveHits) Snapshot() map[domain.ResourceKey]int {
	out := make(map[domain.ResourceKey]int)
	c.hits.Range(func(k, v any) bool {
		out[k.(domain.ResourceKey)] = v.(int)
		return true
	})
	return out
}
