package fileserver

import (
	"fmt"
	"net/http"
	"time"

	"concurrent-fileserver/fileserver/application"
	"concurrent-fileserver/fileserver/domain"

	"go.uber.org/zap"
)

// Handler atende uma requisição já admitida: valida o método, consulta o catálogo
// e monta a resposta.
type Handler struct {
	Catalog *application.Catalog
	Logger  *zap.Logger
}

func NewHandler(catalog *application.Catalog, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Catalog: catalog, Logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := h.serve(w, r)
	h.Logger.Debug("request",
		zap.String("remote", r.RemoteAddr),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Duration("elapsed", time.Since(start)))
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) int {
	if r.Method != http.MethodGet {
		return writeError(w, fmt.Errorf("%s: %w", r.Method, domain.ErrUnsupportedMethod))
	}
	if r.URL == nil || r.URL.Path == "" || r.URL.Path[0] != '/' {
		return writeError(w, fmt.Errorf("target %q: %w", r.RequestURI, domain.ErrParse))
	}

	res, err := h.Catalog.Lookup(r.Context(), r.URL.Path)
	if err != nil {
		status := StatusFor(err)
		if status >= http.StatusInternalServerError {
			h.Logger.Error("lookup failed", zap.String("path", r.URL.Path), zap.Error(err))
		}
		return writeError(w, err)
	}

	switch res.Kind {
	case domain.KindDirectory:
		body, err := renderListing(res)
		if err != nil {
			h.Logger.Error("render listing failed", zap.String("path", r.URL.Path), zap.Error(err))
			return writeError(w, err)
		}
		writeResponse(w, http.StatusOK, contentTypeHTML, body)
	default:
		writeResponse(w, http.StatusOK, res.ContentType, res.Body)
	}
	return http.StatusOK
}
