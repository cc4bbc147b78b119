// Package domain define contratos e tipos de domínio do servidor de arquivos:
// admissão (rate limit), contadores de acesso, estatísticas e vagas de conexão.
//
// Este pacote não depende de net/http nem de implementações concretas.
// A intenção é permitir testes de unidade puros e desacoplar regras de negócio
// de detalhes de infraestrutura.
package domain
