package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelgen/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeFPS    int
	flagServeNoRec  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the level viewer SSH server",
	Long: `Start an SSH server that lets users browse generated levels remotely.

Each SSH connection gets its own viewer starting at world 1, level 1.
All sessions share one generator and one generation log.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.levelgen/host_key

Examples:
  levelgen serve                           # Listen on :23234 with auto-generated key
  levelgen serve --ssh :2222               # Listen on port 2222
  levelgen serve --host-key ./my_host_key  # Use specific host key
  levelgen serve --db ./levels.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(def.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagServeFPS, "fps", def.TickRate, "Motion tick rate for every session")
	serveCmd.Flags().BoolVar(&flagServeNoRec, "no-record", false, "Do not record generations in the database")
}

func runServe(_ *cobra.Command, _ []string) {
	gen, source, err := loadGenerator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagServeFPS,
	}
	if flagServeNoRec {
		cfg.DBPath = ""
	}

	// Sessions are logged at info level regardless of --log-level.
	srvLogger := logger.WithPrefix("levelgen-ssh")
	if srvLogger.GetLevel() > log.InfoLevel {
		srvLogger.SetLevel(log.InfoLevel)
	}
	srvLogger.SetReportTimestamp(true)

	server, err := tui.NewSSHServer(cfg, gen, srvLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting levelgen SSH server on %s (config: %s)\n", server.Addr(), source)
	if _, port, splitErr := net.SplitHostPort(server.Addr()); splitErr == nil {
		fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
