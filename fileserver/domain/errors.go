package domain

import "errors"

// Erros de uma requisição. Todos ficam restritos à conexão que os produziu;
// o adapter HTTP traduz cada um para um status.
var (
	ErrTraversal         = errors.New("path escapes root directory")
	ErrParse             = errors.New("malformed request")
	ErrUnsupportedMethod = errors.New("unsupported method")
	ErrNotFound          = errors.New("resource not found or not allowed")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrRead              = errors.New("failed to read resource")
)
