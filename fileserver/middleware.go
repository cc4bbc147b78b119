package fileserver

import (
	"net/http"
	"time"

	"concurrent-fileserver/fileserver/application"
	"concurrent-fileserver/fileserver/domain"

	"go.uber.org/zap"
)

type AdmissionOptions struct {
	Admitter            domain.Admitter
	Stats               domain.StatsStore
	KeyFn               KeyFunc
	TrustXForwardedFor  bool
	RetryAfter          time.Duration
	AddRateLimitHeaders bool
	Now                 func() time.Time
	Logger              *zap.Logger
}

type windowInfo interface {
	Limit() int
	Window() time.Duration
}

// AdmissionMiddleware é a primeira coisa que uma conexão encontra: cliente
// bloqueado recebe 429 na hora, sem resolver caminho nem tocar nos contadores.
func AdmissionMiddleware(opts AdmissionOptions) func(next http.Handler) http.Handler {
	if opts.RetryAfter == 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.KeyFn == nil {
		opts.KeyFn = ClientKeyFunc(opts.TrustXForwardedFor)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	svc := application.AdmissionService{
		Admitter:   opts.Admitter,
		RetryAfter: opts.RetryAfter,
		Now:        opts.Now,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.KeyFn(r)

			if opts.AddRateLimitHeaders {
				if wi, ok := opts.Admitter.(windowInfo); ok {
					w.Header().Set("X-RateLimit-Limit", formatInt(wi.Limit()))
					w.Header().Set("X-RateLimit-Window", formatFloat(wi.Window().Seconds()))
				}
			}

			dec := svc.Decide(key)
			if opts.Stats != nil {
				err := opts.Stats.Record(r.Context(), domain.StatsEvent{
					Kind:    domain.EventAdmission,
					Client:  key,
					Allowed: dec.Allowed,
					Method:  r.Method,
					Path:    r.URL.Path,
					At:      time.Now(),
				})
				if err != nil {
					opts.Logger.Warn("stats record failed", zap.Error(err))
				}
			}
			if !dec.Allowed {
				opts.Logger.Debug("rate limited",
					zap.String("client", string(key)),
					zap.String("path", r.URL.Path))
				w.Header().Set("Retry-After", formatSeconds(dec.RetryAfter))
				writeError(w, domain.ErrRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
