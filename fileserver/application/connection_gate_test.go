package application

import (
	"context"
	"testing"
	"time"
)

type blockingPool struct{}

func (p *blockingPool) Acquire(ctx context.Context) (func(), bool) {
	select {
	case <-ctx.Done():
		return nil, false
	case <-time.After(5 * time.Second):
		// não deve chegar aqui nos testes
		return nil, false
	}
}

type immediatePool struct {
	acquired int
	released int
}

func (p *immediatePool) Acquire(context.Context) (func(), bool) {
	p.acquired++
	return func() { p.released++ }, true
}

func TestConnectionGate_UnboundedWhenNoPool(t *testing.T) {
	g := &ConnectionGate{}
	leave, ok := g.Enter(context.Background())
	if !ok {
		t.Fatalf("expected ok")
	}
	if g.InFlight() != 1 {
		t.Fatalf("expected 1 in flight, got %d", g.InFlight())
	}
	leave()
	if g.InFlight() != 0 {
		t.Fatalf("expected 0 in flight, got %d", g.InFlight())
	}
}

func TestConnectionGate_UsesTimeout(t *testing.T) {
	g := &ConnectionGate{Pool: &blockingPool{}, AcquireTimeout: 10 * time.Millisecond}

	if _, ok := g.Enter(context.Background()); ok {
		t.Fatalf("expected timeout and ok=false")
	}
	if g.InFlight() != 0 {
		t.Fatalf("failed enter must not count as in flight")
	}
}

func TestConnectionGate_NoTimeoutDelegatesToPool(t *testing.T) {
	pool := &immediatePool{}
	g := &ConnectionGate{Pool: pool}

	leave, ok := g.Enter(context.Background())
	if !ok {
		t.Fatalf("expected ok")
	}
	leave()
	if pool.acquired != 1 || pool.released != 1 {
		t.Fatalf("expected one acquire and one release, got %d/%d", pool.acquired, pool.released)
	}
}
