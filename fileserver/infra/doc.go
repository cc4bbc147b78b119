// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - SlidingWindow: admissão por janela deslizante (log de timestamps por cliente)
//   - TokenBuckets: admissão alternativa com golang.org/x/time/rate
//   - LockedHits / NaiveHits: contadores de acesso nas duas disciplinas
//   - Resolve: confinamento de caminhos dentro do diretório raiz
//   - SlotPool: semáforo simples para limitar conexões simultâneas
//   - MemoryStats / RedisStats / PrometheusStats: destinos de estatísticas
package infra
