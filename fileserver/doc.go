// Package fileserver fornece o servidor HTTP de arquivos concorrente: acceptor,
// middlewares de admissão e de vagas, handler e montagem das respostas.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: casos de uso (decisão de admissão, vagas, catálogo) sem net/http
//   - infra: implementações concretas (janela deslizante, contadores, path gate, stats)
//   - fileserver (este pacote): acceptor + middlewares + handler + tradução para status/headers
//
// Fluxo de uma conexão:
//
//  1. Extrai a chave do cliente (host do RemoteAddr) e decide a admissão; bloqueado → 429
//  2. Aguarda vaga no gate de conexões (só quando MAX_CONNS/SEQUENTIAL estão ativos)
//  3. Só GET → 405; resolve o caminho sob o root → 403 em traversal
//  4. Diretório → conta e lista com hits; arquivo permitido → conta e devolve bytes; resto → 404
//  5. Responde com Connection: close (sem keep-alive)
//
// Variáveis de ambiente do binário (cmd/fileserver) controlam o comportamento,
// como DELAY_MS, RATE_LIMIT, WINDOW_SEC e USE_LOCK.
package fileserver
