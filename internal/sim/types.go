package sim

// Owner identifies which side controls a tower, link, or packet.
type Owner int

const (
	OwnerNeutral Owner = iota
	OwnerPlayer
	OwnerEnemy
)

// String returns a human-readable owner name.
func (o Owner) String() string {
	switch o {
	case OwnerPlayer:
		return "player"
	case OwnerEnemy:
		return "enemy"
	default:
		return "neutral"
	}
}

// UnitPacket is one traveling stack of units moving along a link. Packets are
// pooled: a released packet is reset to defaults so a reused one can never
// leak stale combat state into a new spawn.
type UnitPacket struct {
	ID    int64
	Owner Owner

	// Live count and the count the packet spawned with.
	Count     int
	BaseCount int

	// Per-unit stats. Base values are immutable after spawn; current values
	// may be buffed or debuffed and reverted against base.
	BaseSpeed  float64
	Speed      float64
	BaseDamage float64
	Damage     float64
	BaseHP     float64
	HP         float64
	BaseArmor  float64
	Armor      float64

	// Position along the link, 0..1.
	LinkID   string
	Progress float64

	ArchetypeID string
	Tags        []string

	// Combat parameters
	AttackRange       float64
	AttackCooldown    float64
	CooldownRemaining float64
	HoldRemaining     float64

	// Behavior flags
	ShieldCycling bool
	SplitOnDeath  bool
	SupportAura   bool
	CutsLinks     bool

	// Visual hints
	SizeScale float64
	Tint      string

	IsElite bool
	IsBoss  bool
	Enraged bool

	// Elite drop resolved at spawn time.
	DropGold   int
	DropBuffID string

	AgeSec float64

	// Temporary multipliers applied by auras/buffs; 1 means no effect.
	TempSpeedMul  float64
	TempDamageMul float64
}

// HasTag reports whether the packet carries the given tag.
func (p *UnitPacket) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// reset returns every mutable field to the canonical pooled default. A reset
// packet must be indistinguishable from a freshly constructed one with zeroed
// combat state.
func (p *UnitPacket) reset() {
	*p = UnitPacket{
		TempSpeedMul:  1,
		TempDamageMul: 1,
	}
}

// Tower is one node in the simulation graph. Towers are created at level
// load and never destroyed mid-mission; ownership flips instead of deletion.
type Tower struct {
	ID    string
	Owner Owner
	Pos   Vec2

	HP        float64
	MaxHP     float64
	Troops    float64
	MaxTroops float64
	RegenRate float64

	// Archetype-driven modifiers
	DefenseMul           float64
	PacketDamageMul      float64
	LinkSpeedBonus       float64
	ExtraOutgoingLinks   int
	AuraRadius           float64
	AuraBonus            float64
	CaptureSpeedTakenMul float64
	GoldPerSec           float64
}

// Link is a directed edge between two towers. Player-created links use the
// id "from->to"; scripted links carry designer-chosen ids and are exempt
// from the outgoing-link cap.
type Link struct {
	ID    string
	From  string
	To    string
	Owner Owner

	Points []Vec2
	Level  int

	Integrity           float64
	UnderAttackTimerSec float64

	IsScripted   bool
	HideInRender bool
}

// LinkDestroyedEvent is emitted when a link's integrity reaches zero. The
// position is sampled at the link midpoint for presentation.
type LinkDestroyedEvent struct {
	LinkID string
	At     Vec2
}

// TowerCapturedEvent is emitted when a tower changes ownership.
type TowerCapturedEvent struct {
	TowerID       string
	PreviousOwner Owner
	NewOwner      Owner
}
