package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-threes/internal/platform/tui"
	"github.com/vovakirdan/tui-threes/internal/transport/spectate"
)

var (
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
	flagServeWatchOn string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Threes SSH server",
	Long: `Start an SSH server where every connection gets its own menu and games.
All players share the server's leaderboard; the SSH user name is offered as
the default leaderboard name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.threes/host_key

Examples:
  threes serve                          # Listen on :23234
  threes serve --ssh :2222              # Listen on port 2222
  threes serve --spectate :8090         # Also stream every move over WebSocket

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeWatchOn, "spectate", "", "Serve a move stream for spectators on this address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.close()
	e.openStore()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.TopN = e.cfg.Scores.TopN
	cfg.MaxNameLen = e.cfg.Scores.MaxNameLen

	if flagServeWatchOn != "" {
		hub := spectate.NewHub(e.logger.WithPrefix("spectate"))
		go func() {
			if err := hub.Serve(ctx, flagServeWatchOn); err != nil {
				e.logger.Error("spectator server stopped", "err", err)
			}
		}()
		cfg.Observer = hub.Observer()
	}

	server, err := tui.NewSSHServer(cfg, e.store, e.logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	return server.ListenAndServe(ctx)
}

func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return addr
}

