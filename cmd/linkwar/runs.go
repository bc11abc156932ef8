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
	flagRunsLimit int
	flagRunsTier  string
	flagRunsBoard bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded run results",
	Long: `Display recently recorded runs, with per-tier statistics.

Examples:
  linkwar runs
  linkwar runs --limit 50
  linkwar runs --tier HARD
  linkwar runs --board`,
	Run: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of recent runs to show")
	runsCmd.Flags().StringVar(&flagRunsTier, "tier", "", "Show stats for this tier only")
	runsCmd.Flags().BoolVar(&flagRunsBoard, "board", false, "Open the interactive run board")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsBoard {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if boardErr := tui.RunBoard(store, width, height); boardErr != nil {
			fmt.Fprintf(os.Stderr, "Error running board: %v\n", boardErr)
			os.Exit(1)
		}
		return
	}

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'linkwar simulate' to record the first one.")
		return
	}

	fmt.Printf("  %-10s  %-10s  %-8s  %-5s  %-6s  %-8s  %s\n",
		"Seed", "Tier", "Outcome", "Waves", "Leaked", "Duration", "Date")
	fmt.Printf("  %-10s  %-10s  %-8s  %-5s  %-6s  %-8s  %s\n",
		"----", "----", "-------", "-----", "------", "--------", "----")
	for _, r := range runs {
		fmt.Printf("  %-10d  %-10s  %-8s  %-5d  %-6d  %-8s  %s\n",
			r.Seed, r.Tier, r.Outcome, r.WavesCleared, r.Arrivals,
			fmt.Sprintf("%.0fs", r.DurationSecs),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if flagRunsTier == "" {
		return
	}

	fmt.Println()
	stats, err := store.StatsForTier(flagRunsTier)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving tier stats: %v\n", err)
		os.Exit(1)
	}
	if stats.RunsCount == 0 {
		fmt.Printf("No runs recorded for tier %s.\n", flagRunsTier)
		return
	}

	fmt.Printf("Tier %s: %d runs, %d victories, best %d waves, avg %.1f waves\n",
		stats.Tier, stats.RunsCount, stats.Victories, stats.BestWaves, stats.AvgWaves)

	best, err := store.BestRun(flagRunsTier)
	if err == nil && best != nil {
		fmt.Printf("Best run: seed %d, %d waves in %.0fs (%s)\n",
			best.Seed, best.WavesCleared, best.DurationSecs,
			best.CreatedAt.Format("2006-01-02 15:04"))
	}
}
