package replay

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/younwookim/luckie/internal/application/system"
)

// Recorder wraps a live input source and records what the simulation
// observed on each polled tick, including consumed presses.
type Recorder struct {
	src       system.Input
	overlay   system.Overlay
	data      ReplayData
	recording bool
}

// NewRecorder creates a recorder around src. The seed and stage are
// stored so the run can be rebuilt on playback.
func NewRecorder(src system.Input, seed int64, stage string) *Recorder {
	return &Recorder{
		src: src,
		data: ReplayData{
			Version:   Version,
			RunID:     NewRunID(),
			Seed:      seed,
			Stage:     stage,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // ~1 minute at 60fps
		},
		recording: true,
	}
}

// WatchOverlay records whether o was blocking on each tick
func (r *Recorder) WatchOverlay(o system.Overlay) {
	r.overlay = o
}

// Poll polls the source and starts a new frame
func (r *Recorder) Poll() {
	r.src.Poll()
	if !r.recording {
		return
	}
	f := FrameInput{
		F:   len(r.data.Frames),
		L:   r.src.IsMovingLeft(),
		R:   r.src.IsMovingRight(),
		J:   r.src.IsJumping(),
		Dsh: r.src.IsDashing(),
	}
	if r.overlay != nil {
		f.B = r.overlay.Blocking()
	}
	r.data.Frames = append(r.data.Frames, f)
}

func (r *Recorder) IsMovingLeft() bool { return r.src.IsMovingLeft() }
func (r *Recorder) IsMovingRight() bool { return r.src.IsMovingRight() }
func (r *Recorder) IsJumping() bool { return r.src.IsJumping() }
func (r *Recorder) IsDashing() bool { return r.src.IsDashing() }

// ConsumeActionPress passes through and counts the press on the current frame
func (r *Recorder) ConsumeActionPress() bool {
	ok := r.src.ConsumeActionPress()
	if ok {
		if f := r.current(); f != nil {
			f.A++
		}
	}
	return ok
}

// ConsumeInteractPress passes through and counts the press on the current frame
func (r *Recorder) ConsumeInteractPress() bool {
	ok := r.src.ConsumeInteractPress()
	if ok {
		if f := r.current(); f != nil {
			f.I++
		}
	}
	return ok
}

func (r *Recorder) current() *FrameInput {
	if !r.recording || len(r.data.Frames) == 0 {
		return nil
	}
	return &r.data.Frames[len(r.data.Frames)-1]
}

// Save writes the recording to filename
func (r *Recorder) Save(filename string) error {
	if err := Save(filename, r.data); err != nil {
		return fmt.Errorf("failed to save replay %s: %w", filename, err)
	}
	return nil
}

// Stop stops recording; input keeps passing through
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recording so far
func (r *Recorder) Data() ReplayData {
	return r.data
}

// NewRunID returns a fresh identifier for a run
func NewRunID() string {
	return uuid.New().String()
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json.zst", time.Now().Format("20060102_150405"))
}
