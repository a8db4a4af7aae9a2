// Package world owns the ordered placement of patterns along the scroll
// axis: it converts pattern-local geometry into world-space colliders,
// tracks pits and pickups, advances the camera, and answers the spatial
// queries the physics and collision layers depend on.
package world

import (
	"sort"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// ColliderKind tags collider behavior for the resolver. Exhaustive
// handling replaces the flag soup (isGround/isPlane/...) the design
// grew out of.
type ColliderKind int

const (
	KindGround ColliderKind = iota // Thin landable strip tracking a pattern surface
	KindBlock                      // Solid landable crate, blocks from the side
	KindSpike                      // Lethal static hazard
	KindPlane                      // Lethal moving hazard
)

// Lethal returns true if touching this collider kills the player.
func (k ColliderKind) Lethal() bool {
	return k == KindSpike || k == KindPlane
}

// Landable returns true if the player can stand on this collider.
func (k ColliderKind) Landable() bool {
	return k == KindGround || k == KindBlock
}

// String returns a short name for the kind.
func (k ColliderKind) String() string {
	switch k {
	case KindGround:
		return "ground"
	case KindBlock:
		return "block"
	case KindSpike:
		return "spike"
	case KindPlane:
		return "plane"
	default:
		return "unknown"
	}
}

// Collider is an axis-aligned box used for collision and landing queries,
// distinct from any visual representation.
type Collider struct {
	Box  core.Box
	Kind ColliderKind

	slot int // Stable arena handle backing this collider
	seq  int // Insertion sequence, for ordered iteration
}

// Handle is a stable reference to a collider in the arena. Moving hazards
// hold one so their box can be updated in place every tick, with no
// position-matching search.
type Handle int

// NoHandle marks an unset handle.
const NoHandle Handle = -1

// arena stores colliders in a dense slice with a slot indirection table,
// so removal (swap with last) never invalidates outstanding handles.
type arena struct {
	dense []Collider
	slots []int // slot -> dense index, -1 when free
	free  []int // Recyclable slot ids
	seq   int
}

// add inserts a collider and returns its stable handle.
func (a *arena) add(box core.Box, kind ColliderKind) Handle {
	var slot int
	if n := len(a.free); n > 0 {
		slot = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		slot = len(a.slots)
		a.slots = append(a.slots, -1)
	}

	a.seq++
	a.dense = append(a.dense, Collider{Box: box, Kind: kind, slot: slot, seq: a.seq})
	a.slots[slot] = len(a.dense) - 1
	return Handle(slot)
}

// get returns the collider for a handle, or nil if it has been removed.
func (a *arena) get(h Handle) *Collider {
	if h == NoHandle || int(h) >= len(a.slots) {
		return nil
	}
	idx := a.slots[h]
	if idx < 0 {
		return nil
	}
	return &a.dense[idx]
}

// remove deletes the collider behind a handle. Safe to call twice.
func (a *arena) remove(h Handle) {
	if h == NoHandle || int(h) >= len(a.slots) {
		return
	}
	idx := a.slots[h]
	if idx < 0 {
		return
	}

	last := len(a.dense) - 1
	if idx != last {
		a.dense[idx] = a.dense[last]
		a.slots[a.dense[idx].slot] = idx
	}
	a.dense = a.dense[:last]
	a.slots[h] = -1
	a.free = append(a.free, int(h))
}

// reset drops every collider and recycles all slots.
func (a *arena) reset() {
	a.dense = a.dense[:0]
	a.slots = a.slots[:0]
	a.free = a.free[:0]
	a.seq = 0
}

// collect removes every collider whose right edge is behind cutoffX and
// reports the removed handles. Eligibility is positional, never FIFO:
// placement order is not guaranteed to be left-to-right.
func (a *arena) collect(cutoffX float64) []Handle {
	var removed []Handle
	for i := 0; i < len(a.dense); {
		if a.dense[i].Box.Right() < cutoffX {
			h := Handle(a.dense[i].slot)
			removed = append(removed, h)
			a.remove(h)
			continue // Swap-removal refilled index i
		}
		i++
	}
	return removed
}

// ordered returns the live colliders in insertion order, filtered by keep.
func (a *arena) ordered(keep func(Collider) bool) []Collider {
	out := make([]Collider, 0, len(a.dense))
	for _, c := range a.dense {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}
