package application

import (
	"time"

	"concurrent-fileserver/fileserver/domain"
)

// AdmissionService concentra a regra de aplicação do rate limit.
//
// Ele não sabe nada sobre HTTP (headers/status), apenas retorna uma decisão.
type AdmissionService struct {
	Admitter   domain.Admitter
	RetryAfter time.Duration
	// Now permite fixar o relógio em testes; nil usa time.Now.
	Now func() time.Time
}

func (s AdmissionService) Decide(key domain.ClientKey) domain.Decision {
	if s.Admitter == nil {
		return domain.Decision{Allowed: true}
	}
	if s.RetryAfter <= 0 {
		s.RetryAfter = 1 * time.Second
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	if s.Admitter.Admit(key, now()) {
		return domain.Decision{Allowed: true}
	}
	return domain.Decision{Allowed: false, RetryAfter: s.RetryAfter}
}
