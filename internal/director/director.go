// Package director wires the wave generator, enemy factory, and world into a
// playable headless run: a lane map defended by a single base, waves scheduled
// from generated plans, packets advanced tick by tick. Given the same config
// every run plays out identically.
package director

import (
	"fmt"

	"github.com/ametelin/linkwar/internal/content"
	"github.com/ametelin/linkwar/internal/sim"
)

// Outcome is the terminal state of a run.
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeVictory    Outcome = "victory"
	OutcomeDefeat     Outcome = "defeat"
)

// Lane map constants. The harness map is intentionally fixed: one spawn tower
// per lane feeding a single player base over scripted lane links.
const (
	laneLength      = 60.0
	laneSpacing     = 10.0
	baseHP          = 600.0
	baseTroops      = 120.0
	baseTroopRegen  = 1.5
	baseAttackRange = 0.25 // Fraction of lane length covered by base defense
	baseAttackDmg   = 9.0
	baseAttackCD    = 0.4
	interWaveDelay  = 3.0
	splitChildCount = 3
)

// Config selects the deterministic inputs of a run.
type Config struct {
	RunSeed                 uint32
	Tier                    *content.DifficultyTier
	MissionDifficultyScalar float64
	LaneCount               int
	TotalWaves              int // 0 means the catalog's total
}

// TickReport carries the events drained during one tick, for presentation.
type TickReport struct {
	LinkDestroyed []sim.LinkDestroyedEvent
	TowerCaptured []sim.TowerCapturedEvent
}

// Stats accumulates over a run.
type Stats struct {
	PacketsSpawned   int
	PacketsDestroyed int
	Arrivals         int
	GoldEarned       int
}

// RunResult summarizes a finished (or abandoned) run.
type RunResult struct {
	Outcome      Outcome
	WavesCleared int
	Stats        Stats
	DurationSec  float64
}

// Director owns one run from wave 1 to victory or base capture.
type Director struct {
	catalog *content.Catalog
	gen     *sim.Generator
	factory *sim.Factory
	world   *sim.World
	rng     *sim.RNG

	cfg        Config
	totalWaves int

	waveIndex    int
	plan         sim.WavePlan
	nextEntry    int
	waveClock    float64
	betweenWaves float64
	clock        float64

	attackCooldown float64
	stats          Stats
	outcome        Outcome
}

// New builds a director over the given catalog and config, lays out the lane
// map, and generates the first wave plan.
func New(cat *content.Catalog, cfg Config) *Director {
	if cfg.LaneCount < 1 {
		cfg.LaneCount = 3
	}
	if cfg.MissionDifficultyScalar <= 0 {
		cfg.MissionDifficultyScalar = 1
	}
	totalWaves := cfg.TotalWaves
	if totalWaves <= 0 {
		totalWaves = cat.Balance.TotalWaves
	}

	d := &Director{
		catalog:    cat,
		gen:        sim.NewGenerator(cat),
		factory:    sim.NewFactory(cat),
		world:      sim.NewWorld(cat),
		rng:        sim.NewRNG(cfg.RunSeed),
		cfg:        cfg,
		totalWaves: totalWaves,
		outcome:    OutcomeInProgress,
	}
	d.layoutLanes()
	d.startWave(1)
	return d
}

// layoutLanes builds the fixed harness map: spawn towers on the left, the
// player base on the right, one scripted link per lane.
func (d *Director) layoutLanes() {
	midY := float64(d.cfg.LaneCount-1) * laneSpacing / 2
	d.world.AddTower(&sim.Tower{
		ID:        "base",
		Owner:     sim.OwnerPlayer,
		Pos:       sim.Vec2{X: laneLength, Y: midY},
		HP:        baseHP,
		MaxHP:     baseHP,
		Troops:    baseTroops,
		MaxTroops: baseTroops,
		RegenRate: baseTroopRegen,
	})

	for lane := 0; lane < d.cfg.LaneCount; lane++ {
		spawnID := laneSpawnID(lane)
		pos := sim.Vec2{Y: float64(lane) * laneSpacing}
		d.world.AddTower(&sim.Tower{ID: spawnID, Owner: sim.OwnerEnemy, Pos: pos})
		d.world.UpsertScriptedLink(sim.Link{
			ID:     laneLinkID(lane),
			From:   spawnID,
			To:     "base",
			Owner:  sim.OwnerEnemy,
			Points: []sim.Vec2{pos, {X: laneLength, Y: midY}},
			Level:  1,
		})
	}
}

func laneSpawnID(lane int) string {
	return fmt.Sprintf("spawn-%d", lane)
}

func laneLinkID(lane int) string {
	return fmt.Sprintf("lane-%d", lane)
}

func (d *Director) startWave(index int) {
	d.waveIndex = index
	d.waveClock = 0
	d.nextEntry = 0
	d.plan = d.gen.Generate(sim.GenerateInputs{
		RunSeed:                 d.cfg.RunSeed,
		WaveIndex:               index,
		Tier:                    d.cfg.Tier,
		MissionDifficultyScalar: d.cfg.MissionDifficultyScalar,
		LaneCount:               d.cfg.LaneCount,
	})
}

// Tick advances the run by dt seconds and returns the events that fired.
// Ticking a finished run is a no-op.
func (d *Director) Tick(dt float64) TickReport {
	if d.outcome != OutcomeInProgress || dt <= 0 {
		return TickReport{}
	}
	d.clock += dt

	if d.betweenWaves > 0 {
		d.betweenWaves -= dt
		if d.betweenWaves <= 0 {
			d.betweenWaves = 0
			d.startWave(d.waveIndex + 1)
		}
	} else {
		d.waveClock += dt
		d.scheduleSpawns()
	}

	d.movePackets(dt)
	d.baseDefense(dt)
	d.regenBase(dt)
	d.world.DecayTimers(dt)

	report := TickReport{
		LinkDestroyed: d.world.DrainLinkDestroyedEvents(),
		TowerCaptured: d.world.DrainTowerCapturedEvents(),
	}
	for _, e := range report.TowerCaptured {
		if e.TowerID == "base" && e.NewOwner == sim.OwnerEnemy {
			d.outcome = OutcomeDefeat
		}
	}

	d.checkWaveCleared()
	return report
}

// scheduleSpawns releases plan entries whose offset has elapsed. Elite status
// is rolled per entry from the run-seeded PRNG, so the roll sequence (and the
// whole run) is a pure function of the config.
func (d *Director) scheduleSpawns() {
	for d.nextEntry < len(d.plan.Entries) {
		e := d.plan.Entries[d.nextEntry]
		if e.TimeOffsetSec > d.waveClock {
			return
		}
		d.nextEntry++

		elite := e.EliteChance > 0 && d.rng.Float64() < e.EliteChance
		d.spawnEntry(e, elite)
	}
}

func (d *Director) spawnEntry(e sim.WaveSpawnEntry, elite bool) {
	arch := d.catalog.Enemy(e.EnemyID)
	if arch == nil {
		return
	}
	p, err := d.factory.CreatePacket(sim.SpawnRequest{
		ArchetypeID:             e.EnemyID,
		Owner:                   sim.OwnerEnemy,
		WaveIndex:               d.waveIndex,
		Tier:                    d.cfg.Tier,
		MissionDifficultyScalar: d.cfg.MissionDifficultyScalar,
		Count:                   e.Count,
		IsElite:                 elite,
		IsBoss:                  arch.HasTag("boss"),
		SpeedMul:                d.plan.SpeedMul,
		ArmorMul:                d.plan.ArmorMul,
	})
	if err != nil {
		return
	}
	p.LinkID = laneLinkID(e.LaneIndex % d.cfg.LaneCount)
	d.world.AcquirePacket(p)
	d.stats.PacketsSpawned++
}

// movePackets advances every live packet along its lane and resolves arrivals.
// Iteration is by index from the tail so removal is safe mid-loop.
func (d *Director) movePackets(dt float64) {
	packets := d.world.Packets()
	for i := len(packets) - 1; i >= 0; i-- {
		p := packets[i]
		p.AgeSec += dt

		link := d.world.Link(p.LinkID)
		if link == nil {
			// Lane link was cut: the packet is stranded and despawns.
			d.world.RemovePacketAt(i)
			d.stats.PacketsDestroyed++
			continue
		}

		length := sim.PolylineLength(link.Points)
		if length <= 0 {
			length = 1
		}
		speedMul := d.world.LinkLevel(link.Level).SpeedMul
		p.Progress += p.Speed * p.TempSpeedMul * speedMul * dt / length
		if p.Progress >= 1 {
			d.resolveArrival(i, p, link)
		}
	}
}

// resolveArrival applies an arrived packet to the base: link cutters damage
// the lane link, everything else damages troops first, then hp, then flips
// ownership when hp reaches zero.
func (d *Director) resolveArrival(i int, p *sim.UnitPacket, link *sim.Link) {
	damage := p.Damage * p.TempDamageMul * float64(p.Count)

	if p.CutsLinks {
		d.world.DamageLinkIntegrity(link.ID, damage)
	} else if base := d.world.Tower("base"); base != nil && base.Owner == sim.OwnerPlayer {
		if base.Troops > 0 {
			absorbed := damage
			if absorbed > base.Troops {
				absorbed = base.Troops
			}
			base.Troops -= absorbed
			damage -= absorbed
		}
		if damage > 0 {
			base.HP -= damage
			if base.HP <= 0 {
				base.HP = 0
				d.world.CaptureTower("base", sim.OwnerEnemy)
			}
		}
	}

	d.world.RemovePacketAt(i)
	d.stats.Arrivals++
}

// baseDefense fires the base's defensive attack at the most advanced packet
// in range, on a fixed cooldown. Kills release split children for
// split-on-death archetypes and bank elite drops.
func (d *Director) baseDefense(dt float64) {
	if d.attackCooldown > 0 {
		d.attackCooldown -= dt
	}
	base := d.world.Tower("base")
	if base == nil || base.Owner != sim.OwnerPlayer || d.attackCooldown > 0 {
		return
	}

	target := -1
	best := -1.0
	for i, p := range d.world.Packets() {
		if p.Progress >= 1-baseAttackRange && p.Progress > best {
			best = p.Progress
			target = i
		}
	}
	if target < 0 {
		return
	}
	d.attackCooldown = baseAttackCD

	p := d.world.Packets()[target]
	dmg := baseAttackDmg - p.Armor
	if dmg < 1 {
		dmg = 1
	}
	p.HP -= dmg
	for p.HP <= 0 && p.Count > 0 {
		p.Count--
		p.HP += p.BaseHP
	}
	if p.Count > 0 {
		return
	}

	d.killPacket(target, p)
}

func (d *Director) killPacket(i int, p *sim.UnitPacket) {
	split := p.SplitOnDeath
	linkID := p.LinkID
	progress := p.Progress
	d.stats.PacketsDestroyed++
	d.stats.GoldEarned += p.DropGold
	d.world.RemovePacketAt(i)

	if !split {
		return
	}
	child, err := d.factory.CreatePacket(sim.SpawnRequest{
		ArchetypeID:             sim.SplitChildID,
		Owner:                   sim.OwnerEnemy,
		WaveIndex:               d.waveIndex,
		Tier:                    d.cfg.Tier,
		MissionDifficultyScalar: d.cfg.MissionDifficultyScalar,
		Count:                   splitChildCount,
	})
	if err != nil {
		return
	}
	child.LinkID = linkID
	child.Progress = progress
	d.world.AcquirePacket(child)
	d.stats.PacketsSpawned++
}

func (d *Director) regenBase(dt float64) {
	base := d.world.Tower("base")
	if base == nil || base.Owner != sim.OwnerPlayer {
		return
	}
	base.Troops += base.RegenRate * dt
	if base.Troops > base.MaxTroops {
		base.Troops = base.MaxTroops
	}
}

// checkWaveCleared advances to the next wave once every entry is scheduled and
// no packets remain, or ends the run after the final wave.
func (d *Director) checkWaveCleared() {
	if d.outcome != OutcomeInProgress || d.betweenWaves > 0 {
		return
	}
	if d.nextEntry < len(d.plan.Entries) || len(d.world.Packets()) > 0 {
		return
	}
	if d.waveIndex >= d.totalWaves {
		d.outcome = OutcomeVictory
		return
	}
	d.betweenWaves = interWaveDelay
}

// Run plays the whole run headless at a fixed timestep and returns the result.
func (d *Director) Run(dt float64) RunResult {
	if dt <= 0 {
		dt = 1.0 / 30
	}
	// Bounded so pathological content cannot spin forever.
	maxTicks := int(float64(d.totalWaves) * 600 / dt)
	for t := 0; t < maxTicks && d.outcome == OutcomeInProgress; t++ {
		d.Tick(dt)
	}
	return d.Result()
}

// Result snapshots the run's current totals.
func (d *Director) Result() RunResult {
	cleared := d.waveIndex - 1
	if d.outcome == OutcomeVictory {
		cleared = d.waveIndex
	}
	if cleared < 0 {
		cleared = 0
	}
	return RunResult{
		Outcome:      d.outcome,
		WavesCleared: cleared,
		Stats:        d.stats,
		DurationSec:  d.clock,
	}
}

// Accessors for presentation layers.

func (d *Director) Outcome() Outcome    { return d.outcome }
func (d *Director) WaveIndex() int      { return d.waveIndex }
func (d *Director) TotalWaves() int     { return d.totalWaves }
func (d *Director) World() *sim.World   { return d.world }
func (d *Director) Plan() sim.WavePlan  { return d.plan }
func (d *Director) Stats() Stats        { return d.stats }
func (d *Director) ClockSec() float64   { return d.clock }
func (d *Director) Base() *sim.Tower    { return d.world.Tower("base") }
func (d *Director) BetweenWaves() bool  { return d.betweenWaves > 0 }
func (d *Director) PendingEntries() int { return len(d.plan.Entries) - d.nextEntry }

func (d *Director) Tier() *content.DifficultyTier { return d.cfg.Tier }
