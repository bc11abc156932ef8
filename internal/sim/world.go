package sim

import (
	"github.com/ametelin/linkwar/internal/content"
)

// World owns the mutable simulation graph: towers, links, pooled packets, and
// the per-tick event buffers drained by the orchestrator. It performs no
// per-frame physics itself; it guarantees structural invariants.
//
// World is owned by a single simulation goroutine. None of its methods block;
// any multi-threaded caller must serialize access.
type World struct {
	catalog *content.Catalog

	towers  []*Tower
	links   []*Link // Insertion order is eviction order for player links
	packets []*UnitPacket
	pool    []*UnitPacket

	linkDestroyed []LinkDestroyedEvent
	towerCaptured []TowerCapturedEvent

	nextPacketID int64
}

// NewWorld creates an empty world backed by the given catalog.
func NewWorld(cat *content.Catalog) *World {
	return &World{catalog: cat}
}

// AddTower registers a tower. Duplicate ids replace the existing tower.
func (w *World) AddTower(t *Tower) {
	for i, existing := range w.towers {
		if existing.ID == t.ID {
			w.towers[i] = t
			return
		}
	}
	w.towers = append(w.towers, t)
}

// Tower returns the tower with the given id, or nil.
func (w *World) Tower(id string) *Tower {
	for _, t := range w.towers {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Towers returns all towers in insertion order.
func (w *World) Towers() []*Tower {
	return w.towers
}

// Link returns the link with the given id, or nil.
func (w *World) Link(id string) *Link {
	for _, l := range w.links {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// Links returns all links in insertion order.
func (w *World) Links() []*Link {
	return w.links
}

// LinkID builds the canonical id for a player-created link.
func LinkID(from, to string) string {
	return from + "->" + to
}

// outgoingCap returns the maximum number of non-scripted outgoing links for
// the given tower.
func (w *World) outgoingCap(t *Tower) int {
	return w.catalog.Baselines.MaxOutgoingLinksPerTower + t.ExtraOutgoingLinks
}

// NonScriptedOutgoing returns the tower's player-created outgoing links in
// creation order. Scripted links are excluded from the cap entirely.
func (w *World) NonScriptedOutgoing(from string) []*Link {
	var out []*Link
	for _, l := range w.links {
		if l.From == from && !l.IsScripted {
			out = append(out, l)
		}
	}
	return out
}

// SetOutgoingLink creates a player link from one tower to another. No-op when
// the endpoints are equal, either tower is missing, or an identical
// non-scripted link already exists. When the tower's outgoing cap is already
// met, the oldest non-scripted outgoing link is evicted first.
func (w *World) SetOutgoingLink(from, to string, level int) {
	if from == to {
		return
	}
	src := w.Tower(from)
	dst := w.Tower(to)
	if src == nil || dst == nil {
		return
	}

	id := LinkID(from, to)
	if existing := w.Link(id); existing != nil && !existing.IsScripted {
		return
	}

	// A non-positive cap (malformed content or a negative link bonus)
	// degrades to holding at most one outgoing link.
	outgoing := w.NonScriptedOutgoing(from)
	if len(outgoing) > 0 && len(outgoing) >= w.outgoingCap(src) {
		w.removeLinkByID(outgoing[0].ID, false)
	}

	def := w.LinkLevel(level)
	w.links = append(w.links, &Link{
		ID:        id,
		From:      from,
		To:        to,
		Owner:     src.Owner,
		Points:    []Vec2{src.Pos, dst.Pos},
		Level:     level,
		Integrity: def.MaxIntegrity,
	})
}

// UpsertScriptedLink inserts or replaces a scripted link, keyed by id.
// Replacement happens in place so the link keeps its position in eviction
// order (scripted links are never evicted, but order stability keeps
// iteration deterministic).
func (w *World) UpsertScriptedLink(seed Link) {
	seed.IsScripted = true
	if seed.Integrity <= 0 {
		seed.Integrity = w.LinkLevel(seed.Level).MaxIntegrity
	}
	for i, l := range w.links {
		if l.ID == seed.ID {
			w.links[i] = &seed
			return
		}
	}
	w.links = append(w.links, &seed)
}

// RemoveScriptedLinksNotIn garbage-collects scripted links whose id is absent
// from the active set. Player links are never touched.
func (w *World) RemoveScriptedLinksNotIn(activeIDs map[string]bool) {
	kept := w.links[:0]
	for _, l := range w.links {
		if l.IsScripted && !activeIDs[l.ID] {
			continue
		}
		kept = append(kept, l)
	}
	// Clear the tail so removed links do not pin memory.
	for i := len(kept); i < len(w.links); i++ {
		w.links[i] = nil
	}
	w.links = kept
}

// RemoveLink explicitly destroys a link, emitting a LinkDestroyedEvent.
// No-op for unknown ids.
func (w *World) RemoveLink(id string) {
	w.removeLinkByID(id, true)
}

func (w *World) removeLinkByID(id string, emit bool) {
	for i, l := range w.links {
		if l.ID != id {
			continue
		}
		if emit {
			w.linkDestroyed = append(w.linkDestroyed, LinkDestroyedEvent{
				LinkID: l.ID,
				At:     PolylineMidpoint(l.Points),
			})
		}
		copy(w.links[i:], w.links[i+1:])
		w.links[len(w.links)-1] = nil
		w.links = w.links[:len(w.links)-1]
		return
	}
}

// DamageLinkIntegrity applies damage to a link and reports whether the link
// was destroyed. No-op for non-positive damage or unknown ids (calling it on
// an already-destroyed link is safe). Damage resets the under-attack timer
// used by presentation to flash link state.
func (w *World) DamageLinkIntegrity(id string, damage float64) bool {
	if damage <= 0 {
		return false
	}
	l := w.Link(id)
	if l == nil {
		return false
	}

	l.Integrity -= damage
	l.UnderAttackTimerSec = w.catalog.Baselines.UnderAttackFlashSec
	if l.Integrity > 0 {
		return false
	}

	w.linkDestroyed = append(w.linkDestroyed, LinkDestroyedEvent{
		LinkID: l.ID,
		At:     PolylineMidpoint(l.Points),
	})
	w.removeLinkByID(id, false)
	return true
}

// DecayTimers advances presentation timers by dt seconds.
func (w *World) DecayTimers(dt float64) {
	for _, l := range w.links {
		if l.UnderAttackTimerSec > 0 {
			l.UnderAttackTimerSec -= dt
			if l.UnderAttackTimerSec < 0 {
				l.UnderAttackTimerSec = 0
			}
		}
	}
}

// LinkLevel resolves a level to its definition, falling back to level 1 when
// the requested level is undefined and to a synthetic zero-effect definition
// when even level 1 is missing. Malformed content degrades, never crashes.
func (w *World) LinkLevel(level int) content.LinkLevel {
	if def := w.catalog.LinkLevelFor(level); def != nil {
		return *def
	}
	if def := w.catalog.LinkLevelFor(1); def != nil {
		return *def
	}
	return content.LinkLevel{Level: 1, SpeedMul: 1, MaxIntegrity: 100}
}

// SamplePointOnLink returns the point at fractional progress t along a link's
// polyline.
func (w *World) SamplePointOnLink(l *Link, t float64) Vec2 {
	return SamplePolyline(l.Points, t)
}

// AcquirePacket inserts a packet into the world, reusing pooled memory when
// available: the fresh packet's fields are copied over a pooled object rather
// than allocating. The returned pointer is the live packet.
func (w *World) AcquirePacket(fresh *UnitPacket) *UnitPacket {
	w.nextPacketID++
	fresh.ID = w.nextPacketID

	var p *UnitPacket
	if n := len(w.pool); n > 0 {
		p = w.pool[n-1]
		w.pool[n-1] = nil
		w.pool = w.pool[:n-1]
		*p = *fresh
	} else {
		p = fresh
	}
	w.packets = append(w.packets, p)
	return p
}

// RemovePacketAt releases the packet at index i back to the pool, resetting
// every field to the pooled default. Out-of-range indices are ignored.
func (w *World) RemovePacketAt(i int) {
	if i < 0 || i >= len(w.packets) {
		return
	}
	p := w.packets[i]
	copy(w.packets[i:], w.packets[i+1:])
	w.packets[len(w.packets)-1] = nil
	w.packets = w.packets[:len(w.packets)-1]

	p.reset()
	w.pool = append(w.pool, p)
}

// Packets returns the live packets in insertion order.
func (w *World) Packets() []*UnitPacket {
	return w.packets
}

// PooledPackets returns how many packets are waiting in the pool.
func (w *World) PooledPackets() int {
	return len(w.pool)
}

// CaptureTower flips a tower's ownership and emits a TowerCapturedEvent.
// No-op for unknown ids or when the owner is unchanged.
func (w *World) CaptureTower(id string, newOwner Owner) bool {
	t := w.Tower(id)
	if t == nil || t.Owner == newOwner {
		return false
	}
	prev := t.Owner
	t.Owner = newOwner
	w.towerCaptured = append(w.towerCaptured, TowerCapturedEvent{
		TowerID:       id,
		PreviousOwner: prev,
		NewOwner:      newOwner,
	})
	return true
}

// DrainLinkDestroyedEvents returns and clears the buffered link-destruction
// events. The orchestrator must drain once per tick; the buffer is unbounded
// by design so missed drains batch up rather than drop.
func (w *World) DrainLinkDestroyedEvents() []LinkDestroyedEvent {
	events := w.linkDestroyed
	w.linkDestroyed = nil
	return events
}

// DrainTowerCapturedEvents returns and clears the buffered capture events.
func (w *World) DrainTowerCapturedEvents() []TowerCapturedEvent {
	events := w.towerCaptured
	w.towerCaptured = nil
	return events
}
