package sim

import (
	"github.com/ametelin/linkwar/internal/content"
)

// testCatalog builds a small self-contained catalog for simulation tests.
// Escort injection is disabled (no escort archetype, no force modifier) so
// budget accounting can be checked without escort entries mixed in.
// testNegativeRamp shrinks waves instead of growing them, to exercise the
// ramp floor.
func testNegativeRamp() content.RampConstants {
	return content.RampConstants{Early: -0.1, Mid: -0.1, Late: -0.1}
}

func testCatalog() *content.Catalog {
	return &content.Catalog{
		Enemies: []content.EnemyArchetype{
			{ID: "runner", Name: "Runner", HP: 18, Speed: 14, Damage: 2, Range: 1, Cooldown: 0.8, Tags: []string{"swarm"}, SpawnCost: 4, SpawnWeight: 20, SizeScale: 0.8},
			{ID: "grunt", Name: "Grunt", HP: 40, Speed: 10, Damage: 4, Range: 1.2, Cooldown: 1, SpawnCost: 7, SpawnWeight: 22, SizeScale: 1},
			{ID: "tank", Name: "Tank", HP: 90, Speed: 8, Damage: 6, Range: 1.5, Cooldown: 1.2, Tags: []string{"armored"}, SpawnCost: 10, SpawnWeight: 14, SizeScale: 1.2,
				EliteDrop: &content.EliteDrop{Gold: 40, BuffID: "stoneskin"}},
			{ID: "splitter", Name: "Splitter", HP: 55, Speed: 9, Damage: 3, Range: 1, Cooldown: 1, SpawnCost: 9, SpawnWeight: 10, SplitOnDeath: true, SizeScale: 1.1},
			{ID: "splitling", Name: "Splitling", HP: 10, Speed: 12, Damage: 1, Range: 0.8, Cooldown: 0.7, Tags: []string{"swarm"}, SpawnCost: 2, SpawnWeight: 5, SizeScale: 0.6},
			{ID: "warlock", Name: "Warlock", HP: 35, Speed: 9, Damage: 3, Range: 2.5, Cooldown: 1.5, Tags: []string{"support"}, SpawnCost: 11, SpawnWeight: 8, SupportAura: true, SizeScale: 1},
			{ID: "juggernaut", Name: "Juggernaut", HP: 420, Speed: 7, Damage: 14, Range: 1.8, Cooldown: 1.6, Tags: []string{"miniboss"}, SpawnCost: 60, SizeScale: 1.6},
			{ID: "overmind", Name: "Overmind", HP: 1500, Speed: 6, Damage: 30, Range: 2.2, Cooldown: 2, Tags: []string{"boss"}, SizeScale: 2.2},
		},
		Modifiers: []content.WaveModifier{
			{ID: "frenzy", SpeedMul: 1.3},
			{ID: "ironhide", ArmorMul: 1.5},
			{ID: "surge", SpawnRateMul: 1.4},
			{ID: "gilded", EliteChanceBonus: 0.12},
			{ID: "swarmcall", SpawnRateMul: 1.15, TagWeightMul: map[string]float64{"swarm": 2.5}},
			{ID: "titans", SpeedMul: 0.85, ArmorMul: 1.6, TagWeightMul: map[string]float64{"armored": 2}},
		},
		Handcrafted: []content.HandcraftedWave{
			{WaveIndex: 1, Entries: []content.HandcraftedEntry{
				{TimeOffsetSec: 0, EnemyID: "grunt", Count: 3, LaneIndex: 0},
				{TimeOffsetSec: 2.5, EnemyID: "grunt", Count: 3, LaneIndex: 1},
				{TimeOffsetSec: 5, EnemyID: "runner", Count: 4, LaneIndex: 7},
			}},
		},
		Tiers: []content.DifficultyTier{
			{ID: "NORMAL", SeedSalt: 1013904223, SpawnCountMul: 1, IntensityMul: 1, BossHPMul: 1, BossDamageMul: 1, MiniBossGuaranteedWave: 12},
			{ID: "HARD", SeedSalt: 1664525, SpawnCountMul: 1.25, IntensityMul: 1.15, BossHPMul: 1.25, BossDamageMul: 1.15, MiniBossGuaranteedWave: 9},
		},
		LinkLevels: []content.LinkLevel{
			{Level: 1, SpeedMul: 1, MaxIntegrity: 100},
			{Level: 2, SpeedMul: 1.15, ArmorBonus: 1, DamageBonus: 2, MaxIntegrity: 140, OverchargeDrain: 0.5},
			{Level: 3, SpeedMul: 1.3, ArmorBonus: 2, DamageBonus: 4, MaxIntegrity: 190, OverchargeDrain: 1},
		},
		Balance: content.WaveBalance{
			TotalWaves:         30,
			SpawnIntervalSec:   1.6,
			JitterMin:          0.75,
			JitterMax:          1.35,
			MaxUnitsPerEntry:   6,
			SwarmUnitsPerEntry: 4,
			Budget:             content.BudgetConstants{Base: 40, PerWave: 12, Min: 30, Max: 900},
			Ramp:               content.RampConstants{Early: 0.04, Mid: 0.06, Late: 0.09},
			Scaling: content.ScalingRates{
				HPPerWave: 0.12, HPPerTier: 0.5,
				DamagePerWave: 0.08, DamagePerTier: 0.35,
				SpeedPerWave: 0.01,
			},
			Elite: content.EliteConstants{
				HPMul: 2.5, DamageMul: 1.8, ChanceCap: 0.35,
				SizeScale: 1.35, Tint: "#ffd700", DefaultGold: 25, DefaultBuff: "minor_haste",
			},
			Boss: content.BossConstants{
				FinalWaveIndex: 30, HPMul: 12, DamageMul: 3,
				ArchetypeID: "overmind", EscortID: "juggernaut",
			},
			MiniBoss: content.MiniBossConstants{
				StartWave: 6, ChanceMul: 1.4,
				SupportID: "warlock", TankID: "tank",
			},
			Caps: content.StatCaps{
				MinHP: 1, MaxHP: 50000,
				MinDamage: 0.5, MaxDamage: 2000,
				MinSpeed: 1, MaxSpeed: 60,
			},
		},
		Baselines: content.Baselines{
			MaxOutgoingLinksPerTower: 2,
			UnderAttackFlashSec:      0.85,
			ArmorPerMul:              2.5,
		},
	}
}
