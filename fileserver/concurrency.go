package fileserver

import (
	"net/http"

	"concurrent-fileserver/fileserver/application"
)

// ConnectionLimitMiddleware segura a requisição até haver vaga no gate.
// Gate nil deixa passar tudo (concorrência sem limite).
func ConnectionLimitMiddleware(gate *application.ConnectionGate) func(next http.Handler) http.Handler {
	if gate == nil || gate.Pool == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			leave, ok := gate.Enter(r.Context())
			if !ok {
				writeResponse(w, http.StatusServiceUnavailable, contentTypeText,
					[]byte(http.StatusText(http.StatusServiceUnavailable)))
				return
			}
			defer leave()

			next.ServeHTTP(w, r)
		})
	}
}
