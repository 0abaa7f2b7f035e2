package grid

// cellID is a generational handle into an arena. A handle stays valid until its
// slot is released; reusing the slot bumps the generation.
type cellID struct {
	slot uint32
	gen  uint32
}

type arenaSlot struct {
	value any
	gen   uint32
	used  bool
}

// arena stores the elements of every cell of one table.
// Clearing a table discards its arena; handles into a discarded arena are stale.
type arena struct {
	slots     []arenaSlot
	free      []uint32
	live      int
	discarded bool
}

func newArena() *arena {
	return &arena{}
}

func (a *arena) alloc() cellID {
	a.live++
	if n := len(a.free); n > 0 {
		slot := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[slot]
		s.used = true
		s.value = nil
		return cellID{slot: slot, gen: s.gen}
	}
	a.slots = append(a.slots, arenaSlot{used: true})
	return cellID{slot: uint32(len(a.slots) - 1)}
}

func (a *arena) release(id cellID) {
	if !a.valid(id) {
		return
	}
	s := &a.slots[id.slot]
	s.used = false
	s.value = nil
	s.gen++
	a.free = append(a.free, id.slot)
	a.live--
}

func (a *arena) valid(id cellID) bool {
	if a == nil || a.discarded || int(id.slot) >= len(a.slots) {
		return false
	}
	s := a.slots[id.slot]
	return s.used && s.gen == id.gen
}

func (a *arena) get(id cellID) (any, bool) {
	if !a.valid(id) {
		return nil, false
	}
	return a.slots[id.slot].value, true
}

func (a *arena) set(id cellID, v any) bool {
	if !a.valid(id) {
		return false
	}
	a.slots[id.slot].value = v
	return true
}

// discard invalidates every handle issued by the arena.
func (a *arena) discard() {
	a.discarded = true
	a.slots = nil
	a.free = nil
	a.live = 0
}
