package application

import "concurrent-fileserver/fileserver/domain"

// State é a região mutável compartilhada do processo: buckets de admissão e
// contadores de acesso. Criado uma vez no main e passado por ponteiro a todos
// os handlers; nenhum handler é dono dele.
type State struct {
	Admitter domain.Admitter
	Hits     domain.HitCounter
	Stats    domain.StatsStore
}

func NewState(admitter domain.Admitter, hits domain.HitCounter, stats domain.StatsStore) *State {
	return &State{Admitter: admitter, Hits: hits, Stats: stats}
}
