package application

import (
	"context"
	"sync/atomic"
	"time"

	"concurrent-fileserver/fileserver/domain"
)

// ConnectionGate controla quantas conexões são atendidas ao mesmo tempo.
//
//   - Pool nil: sem limite (uma goroutine por conexão, sem fila).
//   - AcquireTimeout <= 0: espera indefinidamente (até ctx cancelar).
//   - AcquireTimeout > 0: desiste depois do timeout.
//
// Com um pool de uma vaga vira o baseline sequencial.
type ConnectionGate struct {
	Pool           domain.SlotPool
	AcquireTimeout time.Duration

	inFlight atomic.Int64
}

// Enter retorna (leave, ok). Se ok=false, nenhuma vaga foi adquirida e leave é nil.
func (g *ConnectionGate) Enter(ctx context.Context) (func(), bool) {
	release, ok := g.acquire(ctx)
	if !ok {
		return nil, false
	}
	g.inFlight.Add(1)
	return func() {
		g.inFlight.Add(-1)
		release()
	}, true
}

func (g *ConnectionGate) acquire(ctx context.Context) (func(), bool) {
	if g.Pool == nil {
		return func() {}, true
	}
	if g.AcquireTimeout <= 0 {
		return g.Pool.Acquire(ctx)
	}

	acqCtx, cancel := context.WithTimeout(ctx, g.AcquireTimeout)
	defer cancel()
	return g.Pool.Acquire(acqCtx)
}

// InFlight devolve quantas conexões estão dentro do gate agora.
func (g *ConnectionGate) InFlight() int64 { return g.inFlight.Load() }
