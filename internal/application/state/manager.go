package state

// transitions lists where each state may go next
var transitions = map[GameState][]GameState{
	StateMenu:       {StateLoading},
	StateLoading:    {StatePlaying, StateMenu},
	StatePlaying:    {StatePaused, StateGameOver, StateStageClear, StateLoading},
	StatePaused:     {StatePlaying, StateMenu},
	StateGameOver:   {StateLoading, StateMenu},
	StateStageClear: {StateLoading, StateMenu},
}

// Manager owns the top-level game state. The zero value starts in StateMenu.
type Manager struct {
	current  GameState
	onChange func(from, to GameState)
}

// NewManager creates a manager in the given state
func NewManager(initial GameState) *Manager {
	return &Manager{current: initial}
}

// Current returns the active state
func (m *Manager) Current() GameState {
	return m.current
}

// OnChange registers a callback run after each successful transition
func (m *Manager) OnChange(fn func(from, to GameState)) {
	m.onChange = fn
}

// Transition moves to the target state if the move is allowed.
// Transitioning to the current state is a no-op that reports false.
func (m *Manager) Transition(to GameState) bool {
	if !CanTransition(m.current, to) {
		return false
	}
	from := m.current
	m.current = to
	if m.onChange != nil {
		m.onChange(from, to)
	}
	return true
}

// CanTransition reports whether from → to is allowed
func CanTransition(from, to GameState) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
