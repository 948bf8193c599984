// Package replay records per-tick input and plays it back deterministically.
package replay

import (
	"errors"
	"time"
)

// ErrNoFrames is returned when saving or playing an empty recording
var ErrNoFrames = errors.New("replay has no frames")

// Version is written into every recording
const Version = "2.0"

// FrameInput records input state for a single polled tick
type FrameInput struct {
	F   int  `json:"f"`             // Frame number
	L   bool `json:"l,omitempty"`   // Left
	R   bool `json:"r,omitempty"`   // Right
	J   bool `json:"j,omitempty"`   // Jump held
	Dsh bool `json:"dsh,omitempty"` // Dash held
	A   int  `json:"a,omitempty"`   // Action presses consumed
	I   int  `json:"i,omitempty"`   // Interact presses consumed
	B   bool `json:"b,omitempty"`   // Overlay was blocking
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	RunID     string       `json:"runId,omitempty"`
	Seed      int64        `json:"seed"`
	Stage     string       `json:"stage"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// IdleData creates a recording of n idle frames
func IdleData(n int, seed int64, stage string) ReplayData {
	data := ReplayData{
		Version:   Version,
		Seed:      seed,
		Stage:     stage,
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, n),
	}
	for i := range data.Frames {
		data.Frames[i].F = i
	}
	return data
}
