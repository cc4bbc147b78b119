package domain

import (
	"context"
	"time"
)

type EventKind string

const (
	EventAdmission EventKind = "admission"
	EventHit       EventKind = "hit"
)

// StatsEvent representa uma decisão de admissão ou um acesso contado.
//
// Cuidado com cardinalidade: Client/Path sem controle podem explodir o número de
// chaves em Redis ou séries no Prometheus.
type StatsEvent struct {
	Kind EventKind

	Client  ClientKey
	Allowed bool

	Method   string
	Path     string
	Resource ResourceKey

	At time.Time
}

// StatsStore é a estratégia de persistência das estatísticas.
//
// O chamador trata erro como best-effort (não derruba a requisição).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}
