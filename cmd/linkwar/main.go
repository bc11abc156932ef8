// linkwar is the balancing and simulation harness for a tower-link RTS.
//
// Usage:
//
//	linkwar waves              - Print generated wave plans
//	linkwar simulate           - Run a full headless simulation
//	linkwar watch              - Watch a live run in the terminal
//	linkwar runs               - Show recorded run results
//	linkwar validate           - Load and validate content catalogs
//	linkwar serve              - Start SSH server exposing the viewer
//
// Global flags:
//
//	--seed <value>    - Run seed (0 = random based on time)
//	--db <path>       - Runs database path (default: ~/.linkwar/runs.db)
//	--content <dir>   - Directory with custom content YAML files
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ametelin/linkwar/internal/content"
)

var (
	// Global flags
	flagSeed    uint32
	flagDBPath  string
	flagContent string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "linkwar",
	Short: "Deterministic wave simulation harness for a tower-link RTS",
	Long: `linkwar exercises the deterministic simulation core of a tower-link RTS:
wave generation, enemy scaling, and full headless runs.

Available commands:
  waves     - Print generated wave plans for a seed
  simulate  - Run a full headless simulation and record the result
  watch     - Watch a live run in the terminal
  runs      - View recorded run results
  validate  - Load and validate content catalogs
  serve     - Start SSH server exposing the live viewer

Examples:
  linkwar waves --seed 13371337 --tier HARD
  linkwar simulate --seed 42
  linkwar watch --tier ASCENDED
  linkwar runs --board
  linkwar serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "Run seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.linkwar/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagContent, "content", "", "Directory with custom content YAML files")

	rootCmd.AddCommand(wavesCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadCatalog loads content through the shared search order, honoring the
// --content flag.
func loadCatalog() *content.Catalog {
	cat, err := content.Load(flagContent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading content: %v\n", err)
		os.Exit(1)
	}
	return cat
}

// resolveTier maps a tier id to its definition, failing with the list of
// valid ids.
func resolveTier(cat *content.Catalog, id string) *content.DifficultyTier {
	tier := cat.Tier(id)
	if tier == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty tier %q\n", id)
		fmt.Fprint(os.Stderr, "Available tiers:")
		for _, t := range cat.Tiers {
			fmt.Fprintf(os.Stderr, " %s", t.ID)
		}
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}
	return tier
}

// seedValue resolves the --seed flag, rolling a time-based seed for zero.
func seedValue() uint32 {
	if flagSeed != 0 {
		return flagSeed
	}
	return uint32(time.Now().UnixNano())
}
