package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-pipes/internal/core"
	"github.com/vovakirdan/tui-pipes/internal/logging"
	"github.com/vovakirdan/tui-pipes/internal/metrics"
	"github.com/vovakirdan/tui-pipes/internal/progress"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.pipes/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MaxSessions caps concurrent players. Zero means unlimited.
	MaxSessions int

	// TickRate is the simulation rate for every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultConfig().TickRate,
	}
}

// TrackerFactory returns the progress tracker for an SSH user.
type TrackerFactory func(player string) progress.Tracker

// SSHServer wraps a Wish SSH server serving one AppModel per connection.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	deps     AppDeps
	trackers TrackerFactory
	metrics  *metrics.Metrics
	logger   *log.Logger
	active   atomic.Int64
}

// NewSSHServer creates a new SSH server. deps is the template for every
// session: Player and Tracker are filled in per connection from trackers.
// m may be nil.
func NewSSHServer(cfg SSHServerConfig, deps AppDeps, trackers TrackerFactory, m *metrics.Metrics) (*SSHServer, error) {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if trackers == nil {
		trackers = func(string) progress.Tracker { return progress.NewMemory() }
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	srv := &SSHServer{
		config:   cfg,
		deps:     deps,
		trackers: trackers,
		metrics:  m,
		logger:   deps.Logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".pipes", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	// Middlewares run last to first: the limit check sees the session before
	// logging, and bubbletea runs innermost.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
			srv.limitMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

func playerName(sshSession ssh.Session) string {
	if u := sshSession.User(); u != "" {
		return u
	}
	return "anonymous"
}

// teaHandler creates an AppModel for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		wish.Fatalln(sshSession, "pipes needs an interactive terminal, try ssh -t")
		return nil, nil
	}

	player := playerName(sshSession)
	deps := s.deps
	deps.Player = player
	deps.Tracker = s.trackers(player)
	// The per-player logger rides on the session context.
	deps.Logger = nil
	ctx := logging.WithLogger(sshSession.Context(), s.logger.With("player", player))

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	model := NewAppModel(ctx, deps, cfg)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// limitMiddleware rejects sessions beyond MaxSessions.
func (s *SSHServer) limitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		n := s.active.Add(1)
		defer s.active.Add(-1)

		if s.config.MaxSessions > 0 && n > int64(s.config.MaxSessions) {
			s.logger.Warn("session rejected, server full",
				"user", sshSession.User(),
				"remote", sshSession.RemoteAddr().String(),
			)
			wish.Fatalln(sshSession, "The server is full, please try again later.")
			return
		}
		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events and tracks the session gauge.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		id := uuid.NewString()
		start := time.Now()
		s.logger.Info("session started",
			"session", id,
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		if s.metrics != nil {
			s.metrics.SSHSessions.Inc()
			defer s.metrics.SSHSessions.Dec()
		}

		next(sshSession)

		s.logger.Info("session ended",
			"session", id,
			"user", sshSession.User(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is done.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// ActiveSessions returns the number of connected sessions.
func (s *SSHServer) ActiveSessions() int {
	return int(s.active.Load())
}
