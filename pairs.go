package rigid2d

// Pairs is the registry of every Pair currently known to an Engine,
// indexed by stable id so repeated collisions between the same two
// bodies reuse their warm-started state.
type Pairs struct {
	table map[string]*Pair
	list  []*Pair

	// Start/Active classify this step's pairs for event emission; End
	// holds every pair removed this step because it was no longer
	// touched and not kept alive by a sleeping participant.
	Start  []*Pair
	Active []*Pair
	End    []*Pair
}

func NewPairs() *Pairs {
	return &Pairs{table: make(map[string]*Pair)}
}

// Update folds this step's narrow-phase collisions into the registry: an
// incoming collision whose pair already exists updates it in place
// (refreshing contacts by matching each new support point to an old
// contact within 0.5 units, so impulses warm-start);
// otherwise a new Pair is created. Afterwards every pair not touched this
// step is deactivated; if both its bodies are possibly sleeping it is
// kept in the list (its collision may resume once they wake), otherwise
// it is removed and reported via End.
func (ps *Pairs) Update(collisions []Collision, timestamp int64) {
	ps.Start = ps.Start[:0]
	ps.Active = ps.Active[:0]

	touched := make(map[string]bool, len(collisions))

	for _, col := range collisions {
		if !col.Collided {
			continue
		}
		id := pairID(col.ParentA.ID, col.ParentB.ID)
		touched[id] = true

		existing, ok := ps.table[id]
		if !ok {
			p := newPair(col, timestamp)
			ps.table[id] = p
			ps.list = append(ps.list, p)
			ps.Start = append(ps.Start, p)
			continue
		}
		existing.update(col, timestamp)
		ps.Active = append(ps.Active, existing)
	}

	ps.End = ps.End[:0]
	kept := ps.list[:0]
	for _, p := range ps.list {
		if touched[p.ID] {
			kept = append(kept, p)
			continue
		}
		p.setActive(false, timestamp)
		bothPossiblySleeping := (p.BodyA.IsSleeping || p.BodyA.IsStatic) && (p.BodyB.IsSleeping || p.BodyB.IsStatic)
		if bothPossiblySleeping {
			kept = append(kept, p)
			continue
		}
		delete(ps.table, p.ID)
		ps.End = append(ps.End, p)
	}
	ps.list = kept
}

// Clear empties the registry entirely (called from Engine.Clear).
func (ps *Pairs) Clear() {
	ps.table = make(map[string]*Pair)
	ps.list = nil
	ps.Start = nil
	ps.Active = nil
	ps.End = nil
}

// All returns every live pair, active or not.
func (ps *Pairs) All() []*Pair { return ps.list }

// Get looks up a pair by the two body ids it connects.
func (ps *Pairs) Get(idA, idB int64) *Pair {
	return ps.table[pairID(idA, idB)]
}
