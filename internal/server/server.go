// Package server binds the development server, announces where it can be
// reached and runs it until the context is cancelled.
package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"

	"golang.org/x/net/netutil"

	"github.com/f4ah6o/devserve/internal/browser"
	"github.com/f4ah6o/devserve/internal/config"
	"github.com/f4ah6o/devserve/internal/handler"
	"github.com/f4ah6o/devserve/internal/netaddr"
)

// Server serves one root directory.
type Server struct {
	cfg     config.Config
	handler http.Handler
	out     io.Writer
	logger  *log.Logger
	opener  browser.Opener
	localIP func() net.IP
}

// Option customizes a Server.
type Option func(*Server)

// WithOutput sets where the banner and status messages go. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Server) { s.out = w }
}

// WithLogger sets the request and error log. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithOpener replaces the system browser launcher.
func WithOpener(o browser.Opener) Option {
	return func(s *Server) { s.opener = o }
}

// WithLocalIP replaces LAN address discovery.
func WithLocalIP(fn func() net.IP) Option {
	return func(s *Server) { s.localIP = fn }
}

// New validates cfg and prepares the handler chain.
func New(cfg config.Config, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		out:     os.Stdout,
		logger:  log.Default(),
		opener:  browser.System{},
		localIP: netaddr.LocalIP,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handler = handler.New(cfg.Root, handler.Options{
		NoCache:   cfg.NoCache,
		CleanURLs: cfg.CleanURLs,
		Overrides: cfg.MIMETypes,
		Logger:    s.logger,
	})
	return s, nil
}

// Listen binds the configured address. With MaxConnections set, at most that
// many connections are accepted at once; the rest wait in the backlog.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	if s.cfg.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConnections)
	}
	return ln, nil
}

// Serve answers requests on ln until ctx is cancelled, then shuts down and
// returns nil. Any other reason for the loop to end is returned as an error.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:  s.handler,
		ErrorLog: s.logger,
	}
	if s.cfg.MaxConnections == 1 {
		// A kept-alive connection would hold the only slot.
		srv.SetKeepAlivesEnabled(false)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}
	s.printStopped()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Printf("Graceful shutdown failed: %v. Closing connections.", err)
		srv.Close()
	}
	<-errCh
	return nil
}

// Run binds, prints the banner, opens the browser when configured and serves
// until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}

	port := s.cfg.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}

	s.printBanner(port)
	if s.cfg.OpenBrowser {
		s.openBrowser(config.LocalURL(port))
	}
	s.printRunning()

	return s.Serve(ctx, ln)
}

func (s *Server) openBrowser(url string) {
	if err := s.opener.Open(url); err != nil {
		s.printBrowserFailed(url, err)
		return
	}
	s.printBrowserOpened(url)
}
