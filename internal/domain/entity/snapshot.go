package entity

// Snapshot is the serializable per-entity state used by save/load.
// Entities are re-matched on load by (Kind, SpawnIndex).
type Snapshot struct {
	Kind       Kind    `json:"kind" msgpack:"kind"`
	SpawnIndex int     `json:"spawnIndex" msgpack:"spawn_index"`
	X          float64 `json:"x" msgpack:"x"`
	Y          float64 `json:"y" msgpack:"y"`
	VX         float64 `json:"vx" msgpack:"vx"`
	VY         float64 `json:"vy" msgpack:"vy"`
	Health     int     `json:"health" msgpack:"health"`
	Active     bool    `json:"active" msgpack:"active"`
	State      string  `json:"state,omitempty" msgpack:"state,omitempty"`
	Collected  bool    `json:"collected,omitempty" msgpack:"collected,omitempty"`
}

// Key identifies the entity a snapshot belongs to
type Key struct {
	Kind       Kind
	SpawnIndex int
}

// Key returns the matching key of the snapshot
func (s Snapshot) Key() Key {
	return Key{Kind: s.Kind, SpawnIndex: s.SpawnIndex}
}

// Snapshot captures the shared fields
func (e *Entity) Snapshot() Snapshot {
	return Snapshot{
		Kind:       e.Kind,
		SpawnIndex: e.SpawnIndex,
		X:          e.X,
		Y:          e.Y,
		VX:         e.VX,
		VY:         e.VY,
		Health:     e.Health.Current,
		Active:     e.Active,
	}
}

// Restore applies the shared fields
func (e *Entity) Restore(s Snapshot) {
	e.X, e.Y = s.X, s.Y
	e.PrevX, e.PrevY = s.X, s.Y
	e.VX, e.VY = s.VX, s.VY
	if e.Health.Max > 0 {
		e.Health.Current = s.Health
	}
	e.Active = s.Active
}

// Snapshot includes the behavior state
func (e *Enemy) Snapshot() Snapshot {
	s := e.Entity.Snapshot()
	s.State = e.State.String()
	return s
}

// Restore sets the state directly; restoring is not a transition.
// A dead enemy is not resurrected mid-animation but dropped.
func (e *Enemy) Restore(s Snapshot) {
	e.Entity.Restore(s)
	st, ok := ParseEnemyState(s.State)
	if !ok {
		return
	}
	if st == StateDeath {
		e.Active = false
		e.dropsClaimed = true
		e.defeatClaimed = true
		return
	}
	e.State = st
	e.StateTime = 0
}

// Snapshot includes the collected flag
func (i *Item) Snapshot() Snapshot {
	s := i.Entity.Snapshot()
	s.Collected = i.Collected
	return s
}

// Restore applies the collected flag
func (i *Item) Restore(s Snapshot) {
	i.Entity.Restore(s)
	i.Collected = s.Collected
	if i.Collected {
		i.Active = false
	}
}

// Snapshot includes the collected flag
func (f *Flag) Snapshot() Snapshot {
	s := f.Entity.Snapshot()
	s.Collected = f.Collected
	return s
}

// Restore applies the collected flag
func (f *Flag) Restore(s Snapshot) {
	f.Entity.Restore(s)
	f.Collected = s.Collected
}
