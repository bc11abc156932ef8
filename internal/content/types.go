// Package content provides YAML-based catalog loading and validation for the
// linkwar simulation core. Catalogs are loaded once at startup, validated, and
// treated as immutable afterwards.
package content

// EnemyArchetype is the static definition of one enemy type. Immutable once
// loaded; live stats are derived from it by the enemy factory.
type EnemyArchetype struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	HP       float64  `yaml:"hp"`
	Speed    float64  `yaml:"speed"`
	Damage   float64  `yaml:"damage"`
	Range    float64  `yaml:"range"`
	Cooldown float64  `yaml:"cooldown"` // Attack cooldown in seconds
	Tags     []string `yaml:"tags"`

	SpawnCost   float64 `yaml:"spawn_cost"`   // Budget currency consumed per unit
	SpawnWeight float64 `yaml:"spawn_weight"` // Selection probability mass (0 = never picked directly)

	// Behavior flags
	ShieldCycling bool `yaml:"shield_cycling"`
	SplitOnDeath  bool `yaml:"split_on_death"`
	SupportAura   bool `yaml:"support_aura"`
	CutsLinks     bool `yaml:"cuts_links"`

	// Visuals
	SizeScale float64 `yaml:"size_scale"`
	Tint      string  `yaml:"tint"`

	EliteDrop *EliteDrop `yaml:"elite_drop,omitempty"`
}

// EliteDrop defines what an elite variant of an archetype drops on death.
type EliteDrop struct {
	Gold   int    `yaml:"gold"`
	BuffID string `yaml:"buff_id"`
}

// HasTag reports whether the archetype carries the given tag.
func (a *EnemyArchetype) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// WaveModifier is one named effect bundle applied to a generated wave.
// Multiple active modifiers compose: multiplicative factors multiply,
// additive bonuses sum, boolean flags OR together.
type WaveModifier struct {
	ID               string             `yaml:"id"`
	SpeedMul         float64            `yaml:"speed_mul"`
	ArmorMul         float64            `yaml:"armor_mul"`
	SpawnRateMul     float64            `yaml:"spawn_rate_mul"`
	EliteChanceBonus float64            `yaml:"elite_chance_bonus"`
	ForceMiniBoss    bool               `yaml:"force_miniboss"`
	TagWeightMul     map[string]float64 `yaml:"tag_weight_mul,omitempty"`
}

// HandcraftedEntry is one designer-authored spawn within a handcrafted wave.
type HandcraftedEntry struct {
	TimeOffsetSec float64 `yaml:"offset"`
	EnemyID       string  `yaml:"enemy"`
	Count         int     `yaml:"count"`
	EliteChance   float64 `yaml:"elite_chance"`
	LaneIndex     int     `yaml:"lane"`
}

// HandcraftedWave is a fully authored wave that bypasses procedural
// generation. Counts and elite chances are still run through the same
// multiplier pipeline as procedural waves.
type HandcraftedWave struct {
	WaveIndex int                `yaml:"wave"`
	Entries   []HandcraftedEntry `yaml:"entries"`
	Escort    bool               `yaml:"escort"` // Guaranteed miniboss escort
}

// DifficultyTier is a named difficulty configuration supplying the per-tier
// multiplier bundle consumed by the generator and factory.
type DifficultyTier struct {
	ID            string  `yaml:"id"`
	SeedSalt      uint32  `yaml:"seed_salt"` // Mixed into per-wave PRNG seeds
	SpawnCountMul float64 `yaml:"spawn_count_mul"`
	IntensityMul  float64 `yaml:"intensity_mul"`
	BossHPMul     float64 `yaml:"boss_hp_mul"`
	BossDamageMul float64 `yaml:"boss_damage_mul"`

	// First wave at which a miniboss escort is guaranteed every 3rd wave.
	MiniBossGuaranteedWave int `yaml:"miniboss_guaranteed_wave"`
}

// BossConstants configures the final boss wave.
type BossConstants struct {
	FinalWaveIndex int     `yaml:"final_wave_index"`
	HPMul          float64 `yaml:"hp_mul"`
	DamageMul      float64 `yaml:"damage_mul"`
	ArchetypeID    string  `yaml:"archetype"`
	EscortID       string  `yaml:"escort"`
}

// MiniBossConstants configures procedural miniboss escort injection.
type MiniBossConstants struct {
	StartWave int     `yaml:"start_wave"` // Escort chance ramps up from zero here
	ChanceMul float64 `yaml:"chance_mul"`
	EscortID  string  `yaml:"escort"` // Miniboss archetype used for escorts
	SupportID string  `yaml:"support"`
	TankID    string  `yaml:"tank"`
}

// EliteConstants configures elite spawn scaling, visuals, and drop fallbacks.
type EliteConstants struct {
	HPMul       float64 `yaml:"hp_mul"`
	DamageMul   float64 `yaml:"damage_mul"`
	ChanceCap   float64 `yaml:"chance_cap"` // Hard cap on per-entry elite chance
	SizeScale   float64 `yaml:"size_scale"`
	Tint        string  `yaml:"tint"`
	DefaultGold int     `yaml:"default_gold"`
	DefaultBuff string  `yaml:"default_buff"`
}

// StatCaps are the catalog-wide hard clamps on final enemy stats. They are
// the last word: no downstream code may exceed them.
type StatCaps struct {
	MinHP     float64 `yaml:"min_hp"`
	MaxHP     float64 `yaml:"max_hp"`
	MinDamage float64 `yaml:"min_damage"`
	MaxDamage float64 `yaml:"max_damage"`
	MinSpeed  float64 `yaml:"min_speed"`
	MaxSpeed  float64 `yaml:"max_speed"`
}

// BudgetConstants configure the procedural difficulty budget.
type BudgetConstants struct {
	Base    float64 `yaml:"base"`
	PerWave float64 `yaml:"per_wave"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
}

// RampConstants are the per-phase wave ramp growth rates. The wave count is
// split into thirds; each phase ramps at its own per-wave rate.
type RampConstants struct {
	Early float64 `yaml:"early"`
	Mid   float64 `yaml:"mid"`
	Late  float64 `yaml:"late"`
}

// ScalingRates are the per-wave and per-difficulty stat growth rates
// consumed by the enemy factory.
type ScalingRates struct {
	HPPerWave     float64 `yaml:"hp_per_wave"`
	HPPerTier     float64 `yaml:"hp_per_tier"`
	DamagePerWave float64 `yaml:"damage_per_wave"`
	DamagePerTier float64 `yaml:"damage_per_tier"`
	SpeedPerWave  float64 `yaml:"speed_per_wave"`
}

// WaveBalance bundles every wave-generation and stat-scaling constant.
type WaveBalance struct {
	TotalWaves       int     `yaml:"total_waves"`
	SpawnIntervalSec float64 `yaml:"spawn_interval_sec"`
	JitterMin        float64 `yaml:"jitter_min"`
	JitterMax        float64 `yaml:"jitter_max"`

	// Per-entry unit caps; swarm-tagged archetypes use the lower cap so a
	// single entry cannot dump an entire swarm at once.
	MaxUnitsPerEntry   int `yaml:"max_units_per_entry"`
	SwarmUnitsPerEntry int `yaml:"swarm_units_per_entry"`

	Budget   BudgetConstants   `yaml:"budget"`
	Ramp     RampConstants     `yaml:"ramp"`
	Scaling  ScalingRates      `yaml:"scaling"`
	Elite    EliteConstants    `yaml:"elite"`
	Boss     BossConstants     `yaml:"boss"`
	MiniBoss MiniBossConstants `yaml:"miniboss"`
	Caps     StatCaps          `yaml:"caps"`
}

// LinkLevel resolves an integer link level to its combat bundle.
type LinkLevel struct {
	Level           int     `yaml:"level"`
	SpeedMul        float64 `yaml:"speed_mul"`
	ArmorBonus      float64 `yaml:"armor_bonus"`
	DamageBonus     float64 `yaml:"damage_bonus"`
	MaxIntegrity    float64 `yaml:"max_integrity"`
	OverchargeDrain float64 `yaml:"overcharge_drain"`
}

// Baselines are world-level calibration constants.
type Baselines struct {
	MaxOutgoingLinksPerTower int     `yaml:"max_outgoing_links_per_tower"`
	UnderAttackFlashSec      float64 `yaml:"under_attack_flash_sec"`
	ArmorPerMul              float64 `yaml:"armor_per_mul"` // Armor derived per point of multiplier
}

// Catalog is the full immutable content set consumed by the simulation core.
type Catalog struct {
	Enemies     []EnemyArchetype  `yaml:"enemies"`
	Modifiers   []WaveModifier    `yaml:"modifiers"`
	Handcrafted []HandcraftedWave `yaml:"handcrafted"`
	Tiers       []DifficultyTier  `yaml:"tiers"`
	LinkLevels  []LinkLevel       `yaml:"link_levels"`
	Balance     WaveBalance       `yaml:"balance"`
	Baselines   Baselines         `yaml:"baselines"`
}

// Enemy returns the archetype with the given id, or nil if absent.
func (c *Catalog) Enemy(id string) *EnemyArchetype {
	for i := range c.Enemies {
		if c.Enemies[i].ID == id {
			return &c.Enemies[i]
		}
	}
	return nil
}

// Tier returns the difficulty tier with the given id, or nil if absent.
func (c *Catalog) Tier(id string) *DifficultyTier {
	for i := range c.Tiers {
		if c.Tiers[i].ID == id {
			return &c.Tiers[i]
		}
	}
	return nil
}

// HandcraftedFor returns the designer-authored wave for the given index, or
// nil if the wave is procedural.
func (c *Catalog) HandcraftedFor(waveIndex int) *HandcraftedWave {
	for i := range c.Handcrafted {
		if c.Handcrafted[i].WaveIndex == waveIndex {
			return &c.Handcrafted[i]
		}
	}
	return nil
}

// LinkLevelFor returns the link level definition for the given level, or nil
// if absent. Fallback behavior for missing levels lives in the world, not
// here.
func (c *Catalog) LinkLevelFor(level int) *LinkLevel {
	for i := range c.LinkLevels {
		if c.LinkLevels[i].Level == level {
			return &c.LinkLevels[i]
		}
	}
	return nil
}
