package domain

import (
	"fmt"
	"strings"
)

// ResourceKey é o caminho de URL normalizado de um recurso.
// Diretórios terminam com "/".
type ResourceKey string

// HitCounter mantém o número de acessos por recurso.
//
// Snapshot devolve uma cópia que pode ser lida enquanto outros handlers
// continuam incrementando.
type HitCounter interface {
	Increment(key ResourceKey)
	Snapshot() map[ResourceKey]int
}

// Discipline seleciona como o HitCounter sincroniza o read-modify-write.
type Discipline int

const (
	// Locked: incremento atômico sob lock; snapshot consistente.
	Locked Discipline = iota
	// Naive: sem exclusão entre leitura e escrita; perde atualizações de propósito.
	Naive
)

func (d Discipline) String() string {
	switch d {
	case Locked:
		return "locked"
	case Naive:
		return "naive"
	default:
		return fmt.Sprintf("discipline(%d)", int(d))
	}
}

// ParseDiscipline aceita "locked"/"naive" (sem diferenciar maiúsculas).
func ParseDiscipline(s string) (Discipline, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "locked", "lock":
		return Locked, nil
	case "naive":
		return Naive, nil
	}
	return Locked, fmt.Errorf("unknown counter discipline %q", s)
}
