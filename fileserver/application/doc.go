// Package application contém os casos de uso do servidor de arquivos: decisão de
// admissão, vagas de conexão e a consulta ao catálogo (resolver, classificar,
// contar, listar).
//
// Ele depende apenas do pacote domain (e das funções puras de infra) e não
// conhece net/http. Ex.: Catalog.Lookup(path) devolve um domain.Resource ou um
// erro do domínio; o adapter HTTP traduz para status.
package application
