package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/questfolio/questfolio/internal/api"
	"github.com/questfolio/questfolio/internal/core"
	"github.com/questfolio/questfolio/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagHTTPAddr    string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the questfolio SSH server",
	Long: `Start an SSH server that lets visitors browse the portfolio and play Snake.

Each SSH connection gets its own session; the SSH user name is the player name.
With --seed, session n uses seed+n so food placement is reproducible per session.
Scores and levels are stored per-server (all visitors share the leaderboard).

With --http, a read-only JSON API is served alongside:
  GET /health
  GET /api/v1/profile
  GET /api/v1/joke
  GET /api/v1/scores?limit=N
  GET /api/v1/players/{name}

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses the config's server.host_key_path

Examples:
  questfolio serve                          # Listen on :23234
  questfolio serve --ssh :2222              # Listen on port 2222
  questfolio serve --http :8080             # Also serve the API
  questfolio serve --db ./questfolio.db     # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address, empty to disable (default from config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) {
	c, err := loadContent()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	srvCfg := c.cfg.Server
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		srvCfg.SSHAddress = flagSSHAddr
	}
	if flags.Changed("host-key") {
		srvCfg.HostKeyPath = flagHostKey
	}
	if flags.Changed("http") {
		srvCfg.HTTPAddress = flagHTTPAddr
	}
	if flags.Changed("idle-timeout") {
		srvCfg.IdleTimeout = flagIdleTimeout
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "questfolio-ssh",
	})

	deps := tui.Deps{
		Config:  c.cfg,
		Profile: c.profile,
		Jokes:   c.jokes,
		Logger:  logger,
		Runtime: core.RuntimeConfig{Seed: flagSeed},
	}
	if c.store != nil {
		deps.Store = c.store
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     srvCfg.SSHAddress,
		HostKeyPath: srvCfg.HostKeyPath,
		IdleTimeout: srvCfg.IdleTimeout,
	}, deps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if srvCfg.HTTPAddress != "" {
		go serveAPI(ctx, srvCfg.HTTPAddress, c, logger.WithPrefix("questfolio-api"))
	}

	fmt.Printf("Starting questfolio SSH server on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// serveAPI runs the HTTP API until ctx is done.
func serveAPI(ctx context.Context, addr string, c content, logger *log.Logger) {
	var store api.ScoreStore
	if c.store != nil {
		store = c.store
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(c.profile, c.jokes, store, logger).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "err", err)
		}
	}()

	logger.Info("starting HTTP API", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server error", "err", err)
	}
}

// port returns the port part of a listen address for the connect hint.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
