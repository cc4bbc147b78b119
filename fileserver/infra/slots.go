package infra

import (
	"context"
	"sync/atomic"
)

// SlotPool é um semáforo baseado em channel com capacidade fixa.
// Implementa domain.SlotPool e expõe quantas vagas estão ocupadas.
type SlotPool struct {
	sem   chan struct{}
	inUse atomic.Int64
}

func NewSlotPool(max int) *SlotPool {
	return &SlotPool{sem: make(chan struct{}, max)}
}

func (p *SlotPool) Acquire(ctx context.Context) (func(), bool) {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, false
	}
	p.inUse.Add(1)

	var once atomic.Bool
	return func() {
		if once.CompareAndSwap(false, true) {
			p.inUse.Add(-1)
			<-p.sem
		}
	}, true
}

func (p *SlotPool) Cap() int     { return cap(p.sem) }
func (p *SlotPool) InUse() int64 { return p.inUse.Load() }
