package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ametelin/linkwar/internal/director"
	"github.com/ametelin/linkwar/internal/storage"
)

var (
	flagSimTier   string
	flagSimScalar float64
	flagSimLanes  int
	flagSimWaves  int
	flagSimDT     float64
	flagSimNoSave bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a full headless simulation",
	Long: `Play a whole run headless at a fixed timestep, log per-wave progress,
and record the result in the runs database.

Examples:
  linkwar simulate --seed 42
  linkwar simulate --tier HARD --scalar 1.5
  linkwar simulate --waves 10 --no-save`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimTier, "tier", "NORMAL", "Difficulty tier id")
	simulateCmd.Flags().Float64Var(&flagSimScalar, "scalar", 1.0, "Mission difficulty scalar")
	simulateCmd.Flags().IntVar(&flagSimLanes, "lanes", 3, "Number of spawn lanes")
	simulateCmd.Flags().IntVar(&flagSimWaves, "waves", 0, "Waves to play (0 = catalog total)")
	simulateCmd.Flags().Float64Var(&flagSimDT, "dt", 1.0/30, "Fixed timestep in seconds")
	simulateCmd.Flags().BoolVar(&flagSimNoSave, "no-save", false, "Skip recording the result")
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "linkwar",
	})

	cat := loadCatalog()
	tier := resolveTier(cat, flagSimTier)
	seed := seedValue()

	d := director.New(cat, director.Config{
		RunSeed:                 seed,
		Tier:                    tier,
		MissionDifficultyScalar: flagSimScalar,
		LaneCount:               flagSimLanes,
		TotalWaves:              flagSimWaves,
	})

	logger.Info("starting run", "seed", seed, "tier", tier.ID, "scalar", flagSimScalar)

	// Tick manually instead of Run() so wave transitions can be logged.
	// Bounded like Run() so pathological content cannot spin forever.
	maxTicks := int(float64(d.TotalWaves()) * 600 / flagSimDT)
	lastWave := 0
	for t := 0; t < maxTicks && d.Outcome() == director.OutcomeInProgress; t++ {
		d.Tick(flagSimDT)
		if w := d.WaveIndex(); w != lastWave {
			lastWave = w
			logger.Info("wave started", "wave", w, "modifiers", d.Plan().ModifierIDs)
		}
	}

	result := d.Result()
	logger.Info("run finished",
		"outcome", result.Outcome,
		"waves", result.WavesCleared,
		"spawned", result.Stats.PacketsSpawned,
		"destroyed", result.Stats.PacketsDestroyed,
		"leaked", result.Stats.Arrivals,
		"duration", fmt.Sprintf("%.0fs", result.DurationSec),
	)

	if flagSimNoSave {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(storage.RunRecord{
		Seed:             seed,
		Tier:             tier.ID,
		Outcome:          string(result.Outcome),
		WavesCleared:     result.WavesCleared,
		PacketsSpawned:   result.Stats.PacketsSpawned,
		PacketsDestroyed: result.Stats.PacketsDestroyed,
		Arrivals:         result.Stats.Arrivals,
		Gold:             result.Stats.GoldEarned,
		DurationSecs:     result.DurationSec,
	})
	if err != nil {
		logger.Warn("could not save run", "error", err)
		return
	}
	logger.Info("run recorded", "id", id)
}
