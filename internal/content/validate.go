package content

import (
	"errors"
	"fmt"
	"strings"
)

// Minimum catalog sizes. Content below these minimums is structurally broken
// and must stop startup; there is no safe default for it.
const (
	minEnemyArchetypes = 6
	minWaveModifiers   = 6
	minLinkLevels      = 3
)

// Validate checks a loaded catalog for structural problems. It is the only
// place hard content failures are appropriate; every runtime lookup after a
// successful Validate degrades instead of failing.
func Validate(c *Catalog) error {
	var problems []string

	if len(c.Enemies) < minEnemyArchetypes {
		problems = append(problems, fmt.Sprintf("need at least %d enemy archetypes, have %d", minEnemyArchetypes, len(c.Enemies)))
	}
	if len(c.Modifiers) < minWaveModifiers {
		problems = append(problems, fmt.Sprintf("need at least %d wave modifiers, have %d", minWaveModifiers, len(c.Modifiers)))
	}
	if len(c.LinkLevels) < minLinkLevels {
		problems = append(problems, fmt.Sprintf("need at least %d link levels, have %d", minLinkLevels, len(c.LinkLevels)))
	}
	for level := 1; level <= 3; level++ {
		if c.LinkLevelFor(level) == nil {
			problems = append(problems, fmt.Sprintf("link level %d is missing", level))
		}
	}

	if c.Balance.TotalWaves <= 0 {
		problems = append(problems, "balance.total_waves must be positive")
	}
	if c.Balance.SpawnIntervalSec <= 0 {
		problems = append(problems, "balance.spawn_interval_sec must be positive")
	}
	if c.Balance.JitterMin <= 0 || c.Balance.JitterMax < c.Balance.JitterMin {
		problems = append(problems, "balance jitter range is invalid")
	}
	if c.Baselines.MaxOutgoingLinksPerTower <= 0 {
		problems = append(problems, "baselines.max_outgoing_links_per_tower must be positive")
	}

	if id := c.Balance.Boss.ArchetypeID; id != "" && c.Enemy(id) == nil {
		problems = append(problems, fmt.Sprintf("boss archetype %q is not in the enemy catalog", id))
	}
	if id := c.Balance.MiniBoss.EscortID; id != "" && c.Enemy(id) == nil {
		problems = append(problems, fmt.Sprintf("miniboss escort archetype %q is not in the enemy catalog", id))
	}

	if err := validateEnemies(c); err != nil {
		problems = append(problems, err.Error())
	}
	if err := validateTiers(c); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return errors.New("content: invalid catalog: " + strings.Join(problems, "; "))
	}
	return nil
}

func validateEnemies(c *Catalog) error {
	seen := make(map[string]bool, len(c.Enemies))
	for i := range c.Enemies {
		e := &c.Enemies[i]
		if e.ID == "" {
			return fmt.Errorf("enemy archetype %d has an empty id", i)
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate enemy archetype id %q", e.ID)
		}
		seen[e.ID] = true
		if e.HP <= 0 || e.Speed <= 0 {
			return fmt.Errorf("enemy archetype %q has non-positive base stats", e.ID)
		}
		if e.SpawnWeight < 0 || e.SpawnCost < 0 {
			return fmt.Errorf("enemy archetype %q has negative spawn weight or cost", e.ID)
		}
	}
	return nil
}

func validateTiers(c *Catalog) error {
	if len(c.Tiers) == 0 {
		return errors.New("no difficulty tiers defined")
	}
	seen := make(map[string]bool, len(c.Tiers))
	for i := range c.Tiers {
		t := &c.Tiers[i]
		if t.ID == "" {
			return fmt.Errorf("difficulty tier %d has an empty id", i)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate difficulty tier id %q", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}
