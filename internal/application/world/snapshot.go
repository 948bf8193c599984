package world

import (
	"errors"
	"fmt"

	"github.com/younwookim/luckie/internal/domain/entity"
)

// ErrStageMismatch is returned when a snapshot belongs to another stage
var ErrStageMismatch = errors.New("snapshot stage mismatch")

// Snapshot is the serializable state of a world. Only descriptor-spawned
// entities are recorded; runtime spawns (projectiles, drops) are not.
type Snapshot struct {
	Stage    string            `json:"stage" msgpack:"stage"`
	Tick     int               `json:"tick" msgpack:"tick"`
	Stats    Stats             `json:"stats" msgpack:"stats"`
	Player   entity.Snapshot   `json:"player" msgpack:"player"`
	Coins    int               `json:"coins" msgpack:"coins"`
	Ammo     int               `json:"ammo" msgpack:"ammo"`
	Entities []entity.Snapshot `json:"entities" msgpack:"entities"`
}

type restorable interface {
	Core() *entity.Entity
	Snapshot() entity.Snapshot
	Restore(s entity.Snapshot)
}

// descriptorEntities lists the live entities that came from the stage file
func (w *World) descriptorEntities() []restorable {
	var out []restorable
	for _, e := range w.Enemies {
		out = append(out, e)
	}
	for _, it := range w.Items {
		out = append(out, it)
	}
	for _, h := range w.Hazards {
		out = append(out, h)
	}
	for _, n := range w.NPCs {
		out = append(out, n)
	}
	if w.Flag != nil {
		out = append(out, w.Flag)
	}

	kept := out[:0]
	for _, r := range out {
		if r.Core().SpawnIndex >= 0 {
			kept = append(kept, r)
		}
	}
	return kept
}

// Snapshot captures the current state
func (w *World) Snapshot() *Snapshot {
	s := &Snapshot{
		Stage: w.StageName(),
		Tick:  w.tick,
		Stats: w.stats,
	}
	if w.Player != nil {
		s.Player = w.Player.Snapshot()
		s.Coins = w.Player.Coins
		s.Ammo = w.Player.Ammo
	}
	for _, r := range w.descriptorEntities() {
		s.Entities = append(s.Entities, r.Snapshot())
	}
	return s
}

// ApplySnapshot rebuilds the stage from its descriptors and restores the
// recorded state. Descriptor entities missing from the snapshot were gone
// when it was taken and stay gone.
func (w *World) ApplySnapshot(s *Snapshot) error {
	if s == nil {
		return fmt.Errorf("failed to apply snapshot: nil snapshot")
	}
	if w.stageCfg == nil || s.Stage != w.stageCfg.ID {
		return fmt.Errorf("%w: have %q, snapshot %q", ErrStageMismatch, w.StageName(), s.Stage)
	}
	if err := w.build(w.stageCfg); err != nil {
		return fmt.Errorf("failed to apply snapshot: %w", err)
	}

	byKey := make(map[entity.Key]entity.Snapshot, len(s.Entities))
	for _, es := range s.Entities {
		byKey[es.Key()] = es
	}
	for _, r := range w.descriptorEntities() {
		core := r.Core()
		es, ok := byKey[entity.Key{Kind: core.Kind, SpawnIndex: core.SpawnIndex}]
		if !ok {
			core.Deactivate()
			continue
		}
		r.Restore(es)
	}
	w.Enemies = filterActive(w.Enemies)
	w.Items = filterActive(w.Items)
	w.Hazards = filterActive(w.Hazards)
	w.NPCs = filterActive(w.NPCs)

	w.Player.Restore(s.Player)
	w.Player.Coins = s.Coins
	w.Player.Ammo = s.Ammo
	w.stats = s.Stats
	w.tick = s.Tick
	w.gameOver = w.Player.Health.Dead()

	w.camera.Snap(w.Player.Bounds())
	w.logf("world: restored stage %q at tick %d", s.Stage, s.Tick)
	return nil
}
