package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ametelin/linkwar/internal/platform/tui"
	"github.com/ametelin/linkwar/internal/storage"
)

var (
	flagWatchTier   string
	flagWatchScalar float64
	flagWatchLanes  int
	flagWatchFPS    int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a live run in the terminal",
	Long: `Watch a simulation run live, lane by lane, in the terminal.

Controls:
  P/Space    - Pause
  +/-        - Speed up / slow down
  R          - Restart with a fresh seed
  Q/Ctrl+C   - Quit

Examples:
  linkwar watch
  linkwar watch --seed 13371337 --tier HARD
  linkwar watch --lanes 5 --fps 60`,
	Run: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchTier, "tier", "NORMAL", "Difficulty tier id")
	watchCmd.Flags().Float64Var(&flagWatchScalar, "scalar", 1.0, "Mission difficulty scalar")
	watchCmd.Flags().IntVar(&flagWatchLanes, "lanes", 3, "Number of spawn lanes")
	watchCmd.Flags().IntVar(&flagWatchFPS, "fps", 30, "Ticks per second")
}

func runWatch(_ *cobra.Command, _ []string) {
	cat := loadCatalog()
	tier := resolveTier(cat, flagWatchTier)

	// Viewer reads the size from WindowSizeMsg too; this just seeds the
	// first frame before one arrives.
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage, the run just goes unrecorded.
		store = nil
	}

	opts := tui.Options{
		Seed:                    seedValue(),
		Tier:                    tier,
		MissionDifficultyScalar: flagWatchScalar,
		LaneCount:               flagWatchLanes,
		TickRate:                flagWatchFPS,
		Width:                   width,
		Height:                  height,
	}

	runErr := tui.Run(cat, store, opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", runErr)
		os.Exit(1)
	}
}
