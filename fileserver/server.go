package fileserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"concurrent-fileserver/fileserver/application"
	"concurrent-fileserver/fileserver/infra"

	"go.uber.org/zap"
)

type Options struct {
	Root  string
	State *application.State

	Delay       time.Duration
	AllowedExts []string

	TrustXForwardedFor  bool
	RetryAfter          time.Duration
	AddRateLimitHeaders bool

	// MaxConns > 0 limita handlers simultâneos; Sequential força uma vaga.
	MaxConns       int
	Sequential     bool
	AcquireTimeout time.Duration

	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration

	Logger *zap.Logger
}

// Server é o acceptor: cada conexão aceita ganha sua própria goroutine
// (net/http), sem keep-alive, e passa por admissão → vagas → handler.
type Server struct {
	opts    Options
	gate    *application.ConnectionGate
	handler http.Handler
	logger  *zap.Logger
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.State == nil {
		opts.State = application.NewState(nil, infra.NewLockedHits(0), nil)
	}
	if opts.ReadHeaderTimeout <= 0 {
		opts.ReadHeaderTimeout = 2 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 2 * time.Second
	}

	gate := &application.ConnectionGate{AcquireTimeout: opts.AcquireTimeout}
	switch {
	case opts.Sequential:
		gate.Pool = infra.NewSlotPool(1)
	case opts.MaxConns > 0:
		gate.Pool = infra.NewSlotPool(opts.MaxConns)
	}

	catalog := &application.Catalog{
		Root:        opts.Root,
		Resolve:     infra.Resolve,
		Hits:        opts.State.Hits,
		Stats:       opts.State.Stats,
		Delay:       opts.Delay,
		AllowedExts: opts.AllowedExts,
	}

	h := http.Handler(NewHandler(catalog, opts.Logger))
	h = ConnectionLimitMiddleware(gate)(h)
	h = AdmissionMiddleware(AdmissionOptions{
		Admitter:            opts.State.Admitter,
		Stats:               opts.State.Stats,
		TrustXForwardedFor:  opts.TrustXForwardedFor,
		RetryAfter:          opts.RetryAfter,
		AddRateLimitHeaders: opts.AddRateLimitHeaders,
		Logger:              opts.Logger,
	})(h)

	return &Server{opts: opts, gate: gate, handler: h, logger: opts.Logger}
}

func (s *Server) Handler() http.Handler { return s.handler }

// InFlight devolve quantos handlers estão dentro do gate de conexões.
func (s *Server) InFlight() int64 { return s.gate.InFlight() }

// ListenAndServe abre addr e atende até ctx encerrar.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve aceita conexões de ln até ctx encerrar. Handlers em andamento têm
// ShutdownTimeout para terminar; depois disso as conexões são fechadas.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
		ErrorLog:          zap.NewStdLog(s.logger),
	}
	srv.SetKeepAlivesEnabled(false)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
	}()

	s.logger.Info("listening", zap.String("addr", ln.Addr().String()), zap.String("root", s.opts.Root))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
