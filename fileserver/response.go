package fileserver

import (
	"net/http"
)

const serverName = "concurrent-fileserver/1.0"

var (
	bodyForbidden      = []byte("Forbidden")
	bodyBadRequest     = []byte("Bad Request")
	bodyMethod         = []byte("Only GET is supported")
	bodyReadFailure    = []byte("Failed to read file")
	bodyNotFound       = []byte("<!doctype html><html><head><meta charset=\"utf-8\"/><title>404 Not Found</title></head><body><h1>404 Not Found</h1><p>The requested resource does not exist or is not allowed.</p></body></html>")
	bodyTooManyRequest = []byte("<!doctype html><html><body><h1>429 Too Many Requests</h1><p>Rate limit exceeded for your address.</p></body></html>")
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
)

// writeResponse escreve status, headers e corpo de uma vez. Toda resposta fecha
// a conexão: não há keep-alive.
func writeResponse(w http.ResponseWriter, status int, contentType string, body []byte) {
	h := w.Header()
	h.Set("Server", serverName)
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", formatInt(len(body)))
	h.Set("Connection", "close")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
