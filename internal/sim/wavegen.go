package sim

import (
	"math"
	"sort"

	"github.com/ametelin/linkwar/internal/content"
)

// SplitChildID is spawned only when a split-on-death parent dies, never picked
// directly by the generator.
const SplitChildID = "splitling"

// maxEntriesPerWave bounds the procedural loop against pathological content
// (near-zero spawn costs). Normal budgets exhaust long before this.
const maxEntriesPerWave = 256

// WaveSpawnEntry is one timed spawn within a plan.
type WaveSpawnEntry struct {
	TimeOffsetSec float64
	EnemyID       string
	Count         int
	EliteChance   float64
	LaneIndex     int
}

// WavePlan is the generator's output for one wave index. Entries are ordered
// by ascending time offset; the plan is immutable once produced and the
// orchestrator owns scheduling it.
type WavePlan struct {
	WaveIndex         int
	ModifierIDs       []string
	Entries           []WaveSpawnEntry
	HasMiniBossEscort bool
	IsBossWave        bool

	// Aggregated modifier effects the orchestrator applies to spawned packets.
	SpeedMul float64
	ArmorMul float64
}

// GenerateInputs are the only inputs wave generation depends on. Identical
// inputs produce byte-identical plans regardless of call order.
type GenerateInputs struct {
	RunSeed                 uint32
	WaveIndex               int
	Tier                    *content.DifficultyTier
	MissionDifficultyScalar float64
	LaneCount               int
}

// Generator deterministically maps generate inputs to wave plans.
type Generator struct {
	catalog *content.Catalog
}

// NewGenerator creates a generator over the given catalog.
func NewGenerator(cat *content.Catalog) *Generator {
	return &Generator{catalog: cat}
}

// defaultTier stands in when the caller passes a nil tier, so malformed
// difficulty context degrades instead of crashing.
var defaultTier = content.DifficultyTier{
	ID:            "NORMAL",
	SpawnCountMul: 1,
	IntensityMul:  1,
	BossHPMul:     1,
	BossDamageMul: 1,
}

// Generate produces the plan for one wave index.
func (g *Generator) Generate(in GenerateInputs) WavePlan {
	tier := in.Tier
	if tier == nil {
		tier = &defaultTier
	}
	scalar := in.MissionDifficultyScalar
	if scalar <= 0 {
		scalar = 1
	}
	laneCount := in.LaneCount
	if laneCount < 1 {
		laneCount = 1
	}

	countMul := tier.SpawnCountMul * tier.IntensityMul * g.waveRamp(in.WaveIndex) * scalar

	if hw := g.catalog.HandcraftedFor(in.WaveIndex); hw != nil {
		return g.handcraftedPlan(in.WaveIndex, hw, countMul, laneCount)
	}
	if in.WaveIndex == g.catalog.Balance.Boss.FinalWaveIndex {
		return g.bossPlan(in.WaveIndex, tier, countMul, laneCount)
	}
	return g.proceduralPlan(in, tier, scalar, countMul, laneCount)
}

// waveRamp returns the per-wave ramp multiplier. The wave count splits into
// thirds (early/mid/late); each phase grows at its own per-wave rate on top
// of where the previous phase ended. Floored at 0.5 so negative rates cannot
// collapse a wave.
func (g *Generator) waveRamp(waveIndex int) float64 {
	bal := &g.catalog.Balance
	third := bal.TotalWaves / 3
	if third < 1 {
		third = 1
	}

	wavesPast := float64(waveIndex - 1)
	if wavesPast < 0 {
		wavesPast = 0
	}

	var ramp float64
	switch {
	case waveIndex <= third:
		ramp = 1 + wavesPast*bal.Ramp.Early
	case waveIndex <= 2*third:
		ramp = 1 + float64(third)*bal.Ramp.Early + (wavesPast-float64(third))*bal.Ramp.Mid
	default:
		ramp = 1 + float64(third)*bal.Ramp.Early + float64(third)*bal.Ramp.Mid + (wavesPast-float64(2*third))*bal.Ramp.Late
	}

	if ramp < 0.5 {
		ramp = 0.5
	}
	return ramp
}

// scaleCount applies the spawn-count multiplier, never dropping below one.
func scaleCount(n int, mul float64) int {
	scaled := int(math.Round(float64(n) * mul))
	if scaled < 1 {
		return 1
	}
	return scaled
}

// normalizeLane wraps a lane index into [0, laneCount).
func normalizeLane(lane, laneCount int) int {
	lane %= laneCount
	if lane < 0 {
		lane += laneCount
	}
	return lane
}

// handcraftedPlan scales a designer-authored wave through the same multiplier
// pipeline as procedural waves. No PRNG draw occurs: the result is a pure
// function of the inputs.
func (g *Generator) handcraftedPlan(waveIndex int, hw *content.HandcraftedWave, countMul float64, laneCount int) WavePlan {
	chanceCap := g.catalog.Balance.Elite.ChanceCap
	entries := make([]WaveSpawnEntry, 0, len(hw.Entries))
	for _, e := range hw.Entries {
		entries = append(entries, WaveSpawnEntry{
			TimeOffsetSec: e.TimeOffsetSec,
			EnemyID:       e.EnemyID,
			Count:         scaleCount(e.Count, countMul),
			EliteChance:   clampF(e.EliteChance*countMul, 0, chanceCap),
			LaneIndex:     normalizeLane(e.LaneIndex, laneCount),
		})
	}
	sortEntries(entries)

	return WavePlan{
		WaveIndex:         waveIndex,
		Entries:           entries,
		HasMiniBossEscort: hw.Escort,
		SpeedMul:          1,
		ArmorMul:          1,
	}
}

// bossPlan emits the fixed final-wave sequence: the boss, a miniboss escort,
// and two support entries, with counts derived from the tier spawn
// multiplier. No PRNG.
func (g *Generator) bossPlan(waveIndex int, tier *content.DifficultyTier, countMul float64, laneCount int) WavePlan {
	bal := &g.catalog.Balance
	entries := []WaveSpawnEntry{
		{TimeOffsetSec: 0, EnemyID: bal.Boss.ArchetypeID, Count: 1, LaneIndex: normalizeLane(laneCount/2, laneCount)},
		{TimeOffsetSec: 6, EnemyID: bal.Boss.EscortID, Count: scaleCount(1, tier.SpawnCountMul), LaneIndex: normalizeLane(laneCount/2, laneCount)},
		{TimeOffsetSec: 12, EnemyID: bal.MiniBoss.TankID, Count: scaleCount(2, countMul), LaneIndex: 0},
		{TimeOffsetSec: 18, EnemyID: bal.MiniBoss.SupportID, Count: scaleCount(2, countMul), LaneIndex: normalizeLane(laneCount-1, laneCount)},
	}

	// Malformed boss content degrades to whatever entries resolve.
	kept := entries[:0]
	for _, e := range entries {
		if g.catalog.Enemy(e.EnemyID) != nil {
			kept = append(kept, e)
		}
	}
	sortEntries(kept)

	return WavePlan{
		WaveIndex:         waveIndex,
		Entries:           kept,
		HasMiniBossEscort: true,
		IsBossWave:        true,
		SpeedMul:          1,
		ArmorMul:          1,
	}
}

// modifierAggregate is the composed effect of all active wave modifiers.
type modifierAggregate struct {
	ids           []string
	speedMul      float64
	armorMul      float64
	spawnRateMul  float64
	eliteBonus    float64
	forceMiniBoss bool
	tagWeightMul  map[string]float64
}

func (agg *modifierAggregate) apply(m *content.WaveModifier) {
	agg.ids = append(agg.ids, m.ID)
	agg.speedMul *= mulOrOne(m.SpeedMul)
	agg.armorMul *= mulOrOne(m.ArmorMul)
	agg.spawnRateMul *= mulOrOne(m.SpawnRateMul)
	agg.eliteBonus += m.EliteChanceBonus
	agg.forceMiniBoss = agg.forceMiniBoss || m.ForceMiniBoss
	for tag, mul := range m.TagWeightMul {
		if agg.tagWeightMul == nil {
			agg.tagWeightMul = make(map[string]float64)
		}
		agg.tagWeightMul[tag] = mulOrOne(agg.tagWeightMul[tag]) * mulOrOne(mul)
	}
}

// rollModifiers selects 1-2 modifiers for the wave. A forced miniboss-escort
// modifier is consumed from the pool before any random pick, so it can never
// be double-selected.
func (g *Generator) rollModifiers(waveIndex int, tier *content.DifficultyTier, rng *RNG) modifierAggregate {
	agg := modifierAggregate{speedMul: 1, armorMul: 1, spawnRateMul: 1}

	pool := make([]*content.WaveModifier, 0, len(g.catalog.Modifiers))
	for i := range g.catalog.Modifiers {
		pool = append(pool, &g.catalog.Modifiers[i])
	}

	want := 1
	if waveIndex >= 4 {
		want = 2
	}

	if tier.MiniBossGuaranteedWave > 0 && waveIndex >= tier.MiniBossGuaranteedWave && waveIndex%3 == 0 {
		for i, m := range pool {
			if m.ForceMiniBoss {
				agg.apply(m)
				pool = append(pool[:i], pool[i+1:]...)
				break
			}
		}
	}

	for len(agg.ids) < want && len(pool) > 0 {
		i := rng.Intn(len(pool))
		agg.apply(pool[i])
		pool = append(pool[:i], pool[i+1:]...)
	}

	return agg
}

// spawnable filters the enemy catalog to archetypes the procedural loop may
// pick: positive spawn weight, no boss or miniboss tag, and not the split
// child (spawned only when its parent dies).
func (g *Generator) spawnable() []*content.EnemyArchetype {
	var out []*content.EnemyArchetype
	for i := range g.catalog.Enemies {
		a := &g.catalog.Enemies[i]
		if a.SpawnWeight <= 0 || a.ID == SplitChildID {
			continue
		}
		if a.HasTag("boss") || a.HasTag("miniboss") {
			continue
		}
		out = append(out, a)
	}
	return out
}

// pickWeighted runs a weight-proportional roulette over the candidates.
// The final candidate is the deterministic fallback if the roll never goes
// non-positive.
func pickWeighted(candidates []*content.EnemyArchetype, tagMul map[string]float64, rng *RNG) *content.EnemyArchetype {
	total := 0.0
	for _, a := range candidates {
		total += effectiveWeight(a, tagMul)
	}
	if total <= 0 {
		return candidates[len(candidates)-1]
	}

	roll := rng.Float64() * total
	for _, a := range candidates {
		roll -= effectiveWeight(a, tagMul)
		if roll <= 0 {
			return a
		}
	}
	return candidates[len(candidates)-1]
}

func effectiveWeight(a *content.EnemyArchetype, tagMul map[string]float64) float64 {
	w := a.SpawnWeight
	for _, tag := range a.Tags {
		if mul, ok := tagMul[tag]; ok {
			w *= mul
		}
	}
	return w
}

// proceduralPlan is the general case: a fresh PRNG per wave, rolled
// modifiers, and a budget-bounded spawn loop.
func (g *Generator) proceduralPlan(in GenerateInputs, tier *content.DifficultyTier, scalar, countMul float64, laneCount int) WavePlan {
	bal := &g.catalog.Balance
	rng := NewRNG(MixSeed(in.RunSeed, uint32(in.WaveIndex), tier.SeedSalt))

	agg := g.rollModifiers(in.WaveIndex, tier, rng)

	budget := clampF(
		(bal.Budget.Base+float64(in.WaveIndex)*bal.Budget.PerWave)*scalar*tier.IntensityMul,
		bal.Budget.Min, bal.Budget.Max,
	)

	wavesPast := float64(in.WaveIndex - 1)
	if wavesPast < 0 {
		wavesPast = 0
	}
	eliteChance := clampF(agg.eliteBonus+wavesPast*0.005, 0, bal.Elite.ChanceCap)

	rateDivisor := agg.spawnRateMul * math.Max(0.55, tier.IntensityMul)
	baseInterval := bal.SpawnIntervalSec / math.Max(0.3, rateDivisor)

	candidates := g.spawnable()
	var entries []WaveSpawnEntry
	offset := 0.0

	for budget > 0 && len(candidates) > 0 && len(entries) < maxEntriesPerWave {
		arch := pickWeighted(candidates, agg.tagWeightMul, rng)

		unitCap := bal.MaxUnitsPerEntry
		if arch.HasTag("swarm") {
			unitCap = bal.SwarmUnitsPerEntry
		}
		if unitCap < 1 {
			unitCap = 1
		}

		count := scaleCount(1+rng.Intn(unitCap), countMul)

		// Shrink the entry so the budget overshoots by at most one spawn
		// cost; the loop exits on the iteration that would overshoot.
		unitCost := arch.SpawnCost
		if unitCost <= 0 {
			unitCost = 1
		}
		if affordable := int(budget / unitCost); count > affordable {
			count = affordable
			if count < 1 {
				count = 1
			}
		}

		entries = append(entries, WaveSpawnEntry{
			TimeOffsetSec: offset,
			EnemyID:       arch.ID,
			Count:         count,
			EliteChance:   eliteChance,
			LaneIndex:     rng.Intn(laneCount),
		})
		budget -= float64(count) * unitCost
		offset += baseInterval * rng.Range(bal.JitterMin, bal.JitterMax)
	}

	escort := g.shouldEscort(in.WaveIndex, tier, agg.forceMiniBoss, rng)
	if escort {
		entries = g.injectEscort(entries, offset, countMul, laneCount)
	}

	sortEntries(entries)

	return WavePlan{
		WaveIndex:         in.WaveIndex,
		ModifierIDs:       agg.ids,
		Entries:           entries,
		HasMiniBossEscort: escort,
		SpeedMul:          agg.speedMul,
		ArmorMul:          agg.armorMul,
	}
}

// shouldEscort decides miniboss escort injection: forced by a modifier, past
// the tier's guaranteed wave, or a roll against a chance that ramps from 0 at
// the miniboss start wave.
func (g *Generator) shouldEscort(waveIndex int, tier *content.DifficultyTier, forced bool, rng *RNG) bool {
	if g.catalog.Enemy(g.catalog.Balance.MiniBoss.EscortID) == nil {
		return false
	}
	if forced {
		return true
	}
	if tier.MiniBossGuaranteedWave > 0 && waveIndex >= tier.MiniBossGuaranteedWave {
		return true
	}

	mb := &g.catalog.Balance.MiniBoss
	if waveIndex < mb.StartWave {
		return false
	}
	span := g.catalog.Balance.TotalWaves - mb.StartWave
	if span < 1 {
		span = 1
	}
	progress := float64(waveIndex-mb.StartWave) / float64(span)
	chance := math.Min(1, progress*mb.ChanceMul)
	return rng.Float64() < chance
}

// injectEscort appends the miniboss escort group at fixed offsets after the
// main spawn loop.
func (g *Generator) injectEscort(entries []WaveSpawnEntry, after, countMul float64, laneCount int) []WaveSpawnEntry {
	mb := &g.catalog.Balance.MiniBoss

	entries = append(entries, WaveSpawnEntry{
		TimeOffsetSec: after + 2.5,
		EnemyID:       mb.EscortID,
		Count:         1,
		LaneIndex:     normalizeLane(laneCount/2, laneCount),
	})
	if g.catalog.Enemy(mb.SupportID) != nil {
		entries = append(entries, WaveSpawnEntry{
			TimeOffsetSec: after + 4,
			EnemyID:       mb.SupportID,
			Count:         scaleCount(2, countMul),
			LaneIndex:     0,
		})
	}
	if g.catalog.Enemy(mb.TankID) != nil {
		entries = append(entries, WaveSpawnEntry{
			TimeOffsetSec: after + 5.5,
			EnemyID:       mb.TankID,
			Count:         scaleCount(2, countMul),
			LaneIndex:     normalizeLane(laneCount-1, laneCount),
		})
	}
	return entries
}

// sortEntries orders entries by ascending time offset. The sort is stable so
// insertion order is the tiebreak when offsets tie, which keeps playback
// order deterministic.
func sortEntries(entries []WaveSpawnEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TimeOffsetSec < entries[j].TimeOffsetSec
	})
}
