package fileserver

import (
	"errors"
	"net/http"

	"concurrent-fileserver/fileserver/domain"
)

// StatusFor traduz um erro de domínio para o status HTTP. Erros desconhecidos são 500.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrTraversal):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrParse):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupportedMethod):
		return http.StatusMethodNotAllowed
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeError responde com o corpo fixo de cada status.
func writeError(w http.ResponseWriter, err error) int {
	status := StatusFor(err)
	switch status {
	case http.StatusForbidden:
		writeResponse(w, status, contentTypeText, bodyForbidden)
	case http.StatusBadRequest:
		writeResponse(w, status, contentTypeText, bodyBadRequest)
	case http.StatusMethodNotAllowed:
		w.Header().Set("Allow", http.MethodGet)
		writeResponse(w, status, contentTypeText, bodyMethod)
	case http.StatusNotFound:
		writeResponse(w, status, contentTypeHTML, bodyNotFound)
	case http.StatusTooManyRequests:
		writeResponse(w, status, contentTypeHTML, bodyTooManyRequest)
	default:
		writeResponse(w, status, contentTypeText, bodyReadFailure)
	}
	return status
}
