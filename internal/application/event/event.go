// Package event carries lifecycle notifications out of the simulation.
//
// Hooks push events while a tick runs; the world dispatches them once per
// tick after every collection has updated, so subscribers always observe a
// consistent world.
package event

import "github.com/younwookim/luckie/internal/domain/entity"

// Type identifies an event
type Type string

const (
	EnemyDefeated Type = "enemy_defeated"
	ItemCollected Type = "item_collected"
	FlagReached   Type = "flag_reached"
	PlayerDamaged Type = "player_damaged"
	GameOver      Type = "game_over"
	NPCInteract   Type = "npc_interact"
)

// Event is a single notification. Fields not meaningful for a type are zero.
type Event struct {
	Type     Type
	EntityID entity.EntityID
	Kind     entity.Kind
	Subtype  string // archetype, item type or NPC name
	X, Y     float64
	Amount   int
	Lines    []string
}

// Handler receives dispatched events
type Handler func(Event)

// Queue buffers events until Dispatch.
// A nil *Queue accepts and drops everything.
type Queue struct {
	pending  []Event
	handlers map[Type][]Handler
	all      []Handler
}

// NewQueue creates an empty queue
func NewQueue() *Queue {
	return &Queue{handlers: make(map[Type][]Handler)}
}

// Push appends an event for the next dispatch
func (q *Queue) Push(e Event) {
	if q == nil {
		return
	}
	q.pending = append(q.pending, e)
}

// Subscribe registers h for one event type
func (q *Queue) Subscribe(t Type, h Handler) {
	if q == nil || h == nil {
		return
	}
	if q.handlers == nil {
		q.handlers = make(map[Type][]Handler)
	}
	q.handlers[t] = append(q.handlers[t], h)
}

// SubscribeAll registers h for every event type
func (q *Queue) SubscribeAll(h Handler) {
	if q == nil || h == nil {
		return
	}
	q.all = append(q.all, h)
}

// Dispatch delivers pending events in push order and returns how many were
// delivered. Events pushed by handlers wait for the next dispatch.
func (q *Queue) Dispatch() int {
	if q == nil || len(q.pending) == 0 {
		return 0
	}
	batch := q.pending
	q.pending = nil

	for _, e := range batch {
		for _, h := range q.handlers[e.Type] {
			h(e)
		}
		for _, h := range q.all {
			h(e)
		}
	}
	return len(batch)
}

// Len returns the number of pending events
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.pending)
}

// Clear drops pending events without delivering them
func (q *Queue) Clear() {
	if q == nil {
		return
	}
	q.pending = nil
}
