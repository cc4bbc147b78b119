package domain

// Camada de domínio da admissão por cliente.
//
// Regras e contratos (interfaces/tipos) sem dependência de net/http.

import "time"

// ClientKey identifica o cliente conectado (normalmente o host do endereço remoto).
type ClientKey string

// Admitter decide se uma requisição do cliente pode ser admitida no instante now.
//
// O instante é explícito para que a decisão seja função determinística do
// histórico de timestamps. A implementação deve executar evict-check-append
// como uma seção crítica única por cliente.
type Admitter interface {
	Admit(key ClientKey, now time.Time) bool
}

type Decision struct {
	Allowed bool
	// RetryAfter é o valor a ser retornado em Retry-After quando bloquear.
	// Se 0, não há recomendação.
	RetryAfter time.Duration
}
