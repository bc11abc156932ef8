package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ametelin/linkwar/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeTier   string
	flagServeScalar float64
	flagServeLanes  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server exposing the live viewer",
	Long: `Start an SSH server that lets users connect and watch simulation runs.

Each SSH connection gets its own run with a fresh seed. Finished runs are
recorded in the shared runs database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.linkwar/host_key

Examples:
  linkwar serve                           # Listen on :23234 with auto-generated key
  linkwar serve --ssh :2222               # Listen on port 2222
  linkwar serve --tier HARD --scalar 1.5  # Serve harder runs
  linkwar serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeTier, "tier", "NORMAL", "Difficulty tier id for served runs")
	serveCmd.Flags().Float64Var(&flagServeScalar, "scalar", 1.0, "Mission difficulty scalar for served runs")
	serveCmd.Flags().IntVar(&flagServeLanes, "lanes", 3, "Number of spawn lanes for served runs")
}

func runServe(_ *cobra.Command, _ []string) {
	cat := loadCatalog()
	tier := resolveTier(cat, flagServeTier)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Viewer = tui.Options{
		Tier:                    tier,
		MissionDifficultyScalar: flagServeScalar,
		LaneCount:               flagServeLanes,
	}

	server, err := tui.NewSSHServer(cat, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting linkwar SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
