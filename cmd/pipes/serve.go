package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pipes/internal/api"
	"github.com/vovakirdan/tui-pipes/internal/config"
	"github.com/vovakirdan/tui-pipes/internal/logging"
	"github.com/vovakirdan/tui-pipes/internal/metrics"
	"github.com/vovakirdan/tui-pipes/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagNoSSH       bool
	flagNoHTTP      bool
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server and the HTTP stage API",
	Long: `Start an SSH server where every connection gets its own stage picker,
and an HTTP API for managing stored stages and evaluating boards.

Progress is kept per SSH user name. Clear records are shared by everyone.

HTTP routes:
  GET/POST        /stages
  GET/PUT/DELETE  /stages/{id}
  POST            /evaluate
  GET             /metrics

Host key handling:
  - Uses --host-key, or ssh.host_key_path from the config
  - The key is generated on first start if the file does not exist

Examples:
  pipes serve                      # Addresses from config
  pipes serve --ssh :2222          # Listen for SSH on port 2222
  pipes serve --no-http            # SSH only
  pipes serve --http 127.0.0.1:9090 --no-ssh

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from ssh.host and ssh.port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (default from http.addr)")
	serveCmd.Flags().BoolVar(&flagNoSSH, "no-ssh", false, "Do not start the SSH server")
	serveCmd.Flags().BoolVar(&flagNoHTTP, "no-http", false, "Do not start the HTTP API")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", -1, "Maximum concurrent SSH sessions, 0 for unlimited")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if flagNoSSH && flagNoHTTP {
		return fmt.Errorf("nothing to serve: both --no-ssh and --no-http are set")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	level := logging.ParseLevel(e.cfg.Log.Level)

	errCh := make(chan error, 2)
	running := 0

	if !flagNoSSH {
		srv, err := newSSHServer(e, m)
		if err != nil {
			return err
		}
		fmt.Printf("SSH server on %s (connect with: ssh -p %s localhost)\n", srv.Addr(), portOf(srv.Addr()))
		running++
		go func() { errCh <- srv.ListenAndServe(ctx) }()
	}

	if !flagNoHTTP {
		addr := e.cfg.HTTP.Addr
		if flagHTTPAddr != "" {
			addr = flagHTTPAddr
		}
		srv := api.New(e.store, m, logging.NewWithPrefix(os.Stderr, level, "pipes-api"))
		fmt.Printf("Stage API on %s\n", addr)
		running++
		go func() { errCh <- srv.ListenAndServe(ctx, addr) }()
	}

	fmt.Println("Press Ctrl+C to stop")

	// The first server to stop takes the other one down with it.
	var firstErr error
	for range running {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
		cancel()
	}
	return firstErr
}

func newSSHServer(e *env, m *metrics.Metrics) (*tui.SSHServer, error) {
	c := e.cfg.SSH
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	cfg.HostKeyPath = c.HostKeyPath
	cfg.MaxSessions = c.MaxSessions
	cfg.TickRate = e.cfg.UI.TickRate
	if c.IdleTimeoutMin > 0 {
		cfg.IdleTimeout = time.Duration(c.IdleTimeoutMin) * time.Minute
	}

	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	if flagMaxSessions >= 0 {
		cfg.MaxSessions = flagMaxSessions
	}
	cfg.HostKeyPath = config.ExpandHome(cfg.HostKeyPath)

	deps := e.appDeps("")
	deps.Tracker = nil
	deps.Hooks = m.Hooks()
	deps.Logger = logging.NewWithPrefix(os.Stderr, logging.ParseLevel(e.cfg.Log.Level), "pipes-ssh")

	return tui.NewSSHServer(cfg, deps, e.tracker, m)
}

func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
