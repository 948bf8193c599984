// Package audio plays the synthesized sound cues configured in entities.yaml.
package audio

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/younwookim/luckie/internal/infrastructure/config"
)

const sampleRate = beep.SampleRate(44100)

// ErrUnknownSound is returned for cue ids with no configuration
var ErrUnknownSound = errors.New("unknown sound")

// Bank synthesizes cues on demand and mixes them into the speaker.
// Until Init succeeds every call is a silent no-op.
type Bank struct {
	mu      sync.Mutex
	cues    map[string]config.SoundConfig
	mixer   *beep.Mixer
	music   *beep.Ctrl
	musicID string
	enabled bool
	log     *log.Logger
}

// NewBank creates a bank over the configured cues
func NewBank(cues map[string]config.SoundConfig, logger *log.Logger) *Bank {
	return &Bank{
		cues:  cues,
		mixer: &beep.Mixer{},
		log:   logger,
	}
}

// Init opens the speaker. On failure the bank stays silent.
func (b *Bank) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		b.logf("audio: speaker unavailable, running silent: %v", err)
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(b.mixer)
	b.enabled = true
	return nil
}

// Enabled reports whether the speaker is open
func (b *Bank) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// PlaySound mixes a one-shot cue in
func (b *Bank) PlaySound(id string, volume float64) error {
	s, err := b.Stream(id, volume)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.enabled {
		return nil
	}
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
	return nil
}

// PlayMusic starts a looping cue, replacing the current track. Asking for
// the track that is already playing does nothing.
func (b *Bank) PlayMusic(id string, volume float64) error {
	s, err := b.Stream(id, volume)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.enabled || id == b.musicID {
		return nil
	}

	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, s)}
	speaker.Lock()
	if b.music != nil {
		b.music.Paused = true
	}
	b.mixer.Add(ctrl)
	speaker.Unlock()

	b.music = ctrl
	b.musicID = id
	return nil
}

// StopMusic pauses the current track
func (b *Bank) StopMusic() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.music == nil {
		return
	}
	speaker.Lock()
	b.music.Paused = true
	speaker.Unlock()
	b.music = nil
	b.musicID = ""
}

// Close stops everything and releases the speaker
func (b *Bank) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.enabled {
		return
	}
	speaker.Clear()
	speaker.Close()
	b.mixer = &beep.Mixer{}
	b.music = nil
	b.musicID = ""
	b.enabled = false
}

// Stream builds the finite streamer for a cue: its notes in sequence at
// the configured duration, scaled by volume.
func (b *Bank) Stream(id string, volume float64) (beep.Streamer, error) {
	cue, ok := b.cues[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSound, id)
	}

	notes := cue.Notes
	if len(notes) == 0 {
		notes = []float64{cue.Freq}
	}
	dur := cue.Duration
	if dur <= 0 {
		dur = 0.05
	}
	n := sampleRate.N(time.Duration(dur * float64(time.Second)))

	parts := make([]beep.Streamer, 0, len(notes))
	for _, freq := range notes {
		tone, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			return nil, fmt.Errorf("failed to synthesize %q: %w", id, err)
		}
		parts = append(parts, beep.Take(n, tone))
	}
	return withVolume(beep.Seq(parts...), volume), nil
}

// withVolume maps a linear gain onto the log2 scale effects.Volume uses
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func (b *Bank) logf(format string, args ...any) {
	if b.log == nil {
		return
	}
	b.log.Printf(format, args...)
}
