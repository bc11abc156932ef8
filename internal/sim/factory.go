package sim

import (
	"fmt"

	"github.com/ametelin/linkwar/internal/content"
)

// SpawnRequest describes one packet to be created by the factory. Tier and
// mission scalar come from the resolved difficulty context; the wave-level
// multipliers come from the generated plan's modifier aggregate.
type SpawnRequest struct {
	ArchetypeID             string
	Owner                   Owner
	WaveIndex               int
	Tier                    *content.DifficultyTier
	MissionDifficultyScalar float64
	Count                   int

	IsElite bool
	IsBoss  bool

	// Wave-modifier aggregates; zero means unset (treated as 1).
	SpeedMul float64
	ArmorMul float64

	// Optional boss sub-modifiers; zero means unset (treated as 1).
	BossHPMul     float64
	BossDamageMul float64
}

// Factory turns spawn requests into fully scaled unit packets. It uses no
// PRNG: given an identical request and catalog, output stats are
// bit-identical.
type Factory struct {
	catalog *content.Catalog
}

// NewFactory creates a factory over the given catalog.
func NewFactory(cat *content.Catalog) *Factory {
	return &Factory{catalog: cat}
}

// bossFactor normalizes one boss multiplier: unset values count as 1 and
// every factor is floored at 0.5 so stacked debuffs cannot zero a boss out.
func bossFactor(v float64) float64 {
	if v == 0 {
		return 1
	}
	if v < 0.5 {
		return 0.5
	}
	return v
}

// mulOrOne treats a zero multiplier as "unset".
func mulOrOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// ArmorFor derives armor from a multiplier. Base armor and effective armor
// are both seeded from the same multiplier at spawn time and remain
// independently mutable afterwards.
func (f *Factory) ArmorFor(mul float64) float64 {
	if mul <= 1 {
		return 0
	}
	return (mul - 1) * f.catalog.Baselines.ArmorPerMul
}

// CreatePacket builds one fully initialized packet from a spawn request.
// The only failure mode is an unknown archetype id: that is a programmer
// error (a spawn request referencing content that was never loaded), and
// recovering silently would spawn an invalid entity.
func (f *Factory) CreatePacket(req SpawnRequest) (*UnitPacket, error) {
	arch := f.catalog.Enemy(req.ArchetypeID)
	if arch == nil {
		return nil, fmt.Errorf("sim: unknown archetype %q", req.ArchetypeID)
	}

	bal := &f.catalog.Balance
	rates := &bal.Scaling

	wavesPast := float64(req.WaveIndex - 1)
	if wavesPast < 0 {
		wavesPast = 0
	}
	tiersPast := req.MissionDifficultyScalar - 1
	if tiersPast < 0 {
		tiersPast = 0
	}

	hpScale := 1 + wavesPast*rates.HPPerWave + tiersPast*rates.HPPerTier
	damageScale := 1 + wavesPast*rates.DamagePerWave + tiersPast*rates.DamagePerTier
	speedScale := 1 + wavesPast*rates.SpeedPerWave

	hp := arch.HP * hpScale
	damage := arch.Damage * damageScale
	speed := arch.Speed * speedScale * mulOrOne(req.SpeedMul)

	if req.IsElite {
		hp *= bal.Elite.HPMul
		damage *= bal.Elite.DamageMul
	}

	if req.IsBoss {
		var tierHPMul, tierDamageMul float64 = 1, 1
		if req.Tier != nil {
			tierHPMul = req.Tier.BossHPMul
			tierDamageMul = req.Tier.BossDamageMul
		}
		hp *= bossFactor(bal.Boss.HPMul) * bossFactor(tierHPMul) * bossFactor(req.BossHPMul)
		damage *= bossFactor(bal.Boss.DamageMul) * bossFactor(tierDamageMul) * bossFactor(req.BossDamageMul)
	}

	// The caps are the last word; no downstream code may exceed them.
	hp = clampF(hp, bal.Caps.MinHP, bal.Caps.MaxHP)
	damage = clampF(damage, bal.Caps.MinDamage, bal.Caps.MaxDamage)
	speed = clampF(speed, bal.Caps.MinSpeed, bal.Caps.MaxSpeed)

	count := req.Count
	if count < 1 {
		count = 1
	}

	armor := f.ArmorFor(mulOrOne(req.ArmorMul))

	sizeScale := arch.SizeScale
	tint := arch.Tint
	dropGold := 0
	dropBuff := ""
	if req.IsElite {
		sizeScale = arch.SizeScale * bal.Elite.SizeScale
		tint = bal.Elite.Tint
		if arch.EliteDrop != nil {
			dropGold = arch.EliteDrop.Gold
			dropBuff = arch.EliteDrop.BuffID
		} else {
			dropGold = bal.Elite.DefaultGold
			dropBuff = bal.Elite.DefaultBuff
		}
	}

	tags := make([]string, len(arch.Tags))
	copy(tags, arch.Tags)

	return &UnitPacket{
		Owner:     req.Owner,
		Count:     count,
		BaseCount: count,

		BaseSpeed:  speed,
		Speed:      speed,
		BaseDamage: damage,
		Damage:     damage,
		BaseHP:     hp,
		HP:         hp,
		BaseArmor:  armor,
		Armor:      armor,

		ArchetypeID: arch.ID,
		Tags:        tags,

		AttackRange:    arch.Range,
		AttackCooldown: arch.Cooldown,

		ShieldCycling: arch.ShieldCycling,
		SplitOnDeath:  arch.SplitOnDeath,
		SupportAura:   arch.SupportAura,
		CutsLinks:     arch.CutsLinks,

		SizeScale: sizeScale,
		Tint:      tint,

		IsElite: req.IsElite,
		IsBoss:  req.IsBoss,

		DropGold:   dropGold,
		DropBuffID: dropBuff,

		TempSpeedMul:  1,
		TempDamageMul: 1,
	}, nil
}
