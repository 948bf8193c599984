// Package state holds the top-level game state and its allowed transitions.
package state

// GameState is the top-level mode of the game
type GameState int

const (
	StateMenu GameState = iota
	StateLoading
	StatePlaying
	StatePaused
	StateGameOver
	StateStageClear
)

var stateNames = [...]string{
	StateMenu:       "Menu",
	StateLoading:    "Loading",
	StatePlaying:    "Playing",
	StatePaused:     "Paused",
	StateGameOver:   "GameOver",
	StateStageClear: "StageClear",
}

func (s GameState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Ended reports whether the run is over, won or lost
func (s GameState) Ended() bool {
	return s == StateGameOver || s == StateStageClear
}
