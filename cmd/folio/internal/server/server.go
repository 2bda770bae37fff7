// Package server serves a rendered folio document over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"net/netip"
	"time"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/go-drift/folio/pkg/pagecache"
)

// PageFunc renders the document served at "/".
type PageFunc func(ctx context.Context) ([]byte, error)

// Options configures a Server.
type Options struct {
	Addr string
	// RateLimit is the sustained requests per second allowed per client.
	// Zero disables rate limiting.
	RateLimit float64
	Burst     int
	// CORSOrigins lists the allowed origins; "*" allows any.
	CORSOrigins []string
	// TrustedProxies are the peers whose forwarding headers name the client.
	// When empty the connecting address identifies the client.
	TrustedProxies []netip.Prefix

	// Page renders the document. Cache stores rendered pages under
	// PageKey; a nil Cache renders every request.
	Page    PageFunc
	Cache   pagecache.Cache
	PageKey string

	Stylesheet string
	// Assets is served under /assets/.
	Assets fs.FS

	Logger logrus.FieldLogger
}

// Server is the folio HTTP server.
type Server struct {
	opts    Options
	log     logrus.FieldLogger
	handler http.Handler
}

// Cache status values reported in the X-Cache header.
const (
	CacheHit    = "HIT"
	CacheMiss   = "MISS"
	CacheBypass = "BYPASS"
)

// ShutdownTimeout bounds graceful shutdown in Run.
const ShutdownTimeout = 5 * time.Second

// New returns a server for opts.
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	s := &Server{opts: opts, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /index.html", s.handlePage)
	mux.HandleFunc("GET /style.css", s.handleStylesheet)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if opts.Assets != nil {
		mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(opts.Assets)))
	}

	clients := clientResolver{trusted: opts.TrustedProxies}
	var h http.Handler = mux
	if opts.RateLimit > 0 {
		h = newRateLimiter(opts.RateLimit, opts.Burst, clients).middleware(h)
	}
	h = cors.New(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	}).Handler(h)
	s.handler = requestLogging(log, clients)(h)
	return s
}

// Handler returns the server's root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.WithField("addr", ln.Addr().String()).Info("serving")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, status, err := s.page(r.Context())
	if err != nil {
		s.log.WithError(err).Error("render failed")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Cache", status)
	if _, err := w.Write(page); err != nil {
		s.log.WithError(err).Debug("write page failed")
	}
}

func (s *Server) page(ctx context.Context) ([]byte, string, error) {
	if s.opts.Page == nil {
		return nil, "", errors.New("no page configured")
	}
	if s.opts.Cache == nil {
		page, err := s.opts.Page(ctx)
		return page, CacheBypass, err
	}

	key := pagecache.Key("page", s.opts.PageKey)
	page, err := s.opts.Cache.Get(ctx, key)
	if err == nil {
		return page, CacheHit, nil
	}
	status := CacheMiss
	if !errors.Is(err, pagecache.ErrMiss) {
		s.log.WithError(err).Warn("page cache unavailable")
		status = CacheBypass
	}

	page, err = s.opts.Page(ctx)
	if err != nil {
		return nil, "", err
	}
	if status == CacheMiss {
		if err := s.opts.Cache.Set(ctx, key, page); err != nil {
			s.log.WithError(err).Warn("page cache store failed")
		}
	}
	return page, status, nil
}

func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if _, err := io.WriteString(w, s.opts.Stylesheet); err != nil {
		s.log.WithError(err).Debug("write stylesheet failed")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		s.log.WithError(err).Debug("write health failed")
	}
}
