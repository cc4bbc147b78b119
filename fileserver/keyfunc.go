package fileserver

import (
	"net"
	"net/http"
	"strings"

	"concurrent-fileserver/fileserver/domain"
)

type KeyFunc func(r *http.Request) domain.ClientKey

// ClientKeyFunc chaveia pelo host do endereço remoto. Com trustXFF, usa o
// primeiro IP do X-Forwarded-For quando presente (só atrás de proxy confiável).
func ClientKeyFunc(trustXFF bool) KeyFunc {
	return func(r *http.Request) domain.ClientKey {
		if trustXFF {
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				first, _, _ := strings.Cut(xff, ",")
				if ip := strings.TrimSpace(first); ip != "" {
					return domain.ClientKey(ip)
				}
			}
		}

		host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
		if err == nil && host != "" {
			return domain.ClientKey(host)
		}
		if r.RemoteAddr != "" {
			return domain.ClientKey(r.RemoteAddr)
		}
		return "unknown"
	}
}
