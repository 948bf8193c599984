package replay

// Replayer plays recorded frames back as the simulation's input source
// and overlay. Each Poll advances one frame; polling past the end yields
// idle input.
type Replayer struct {
	data ReplayData
	next int
	cur  FrameInput

	actions   int
	interacts int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// Poll moves to the next recorded frame
func (r *Replayer) Poll() {
	if r.next >= len(r.data.Frames) {
		r.cur = FrameInput{}
		r.actions, r.interacts = 0, 0
		return
	}
	r.cur = r.data.Frames[r.next]
	r.actions, r.interacts = r.cur.A, r.cur.I
	r.next++
}

func (r *Replayer) IsMovingLeft() bool { return r.cur.L }
func (r *Replayer) IsMovingRight() bool { return r.cur.R }
func (r *Replayer) IsJumping() bool { return r.cur.J }
func (r *Replayer) IsDashing() bool { return r.cur.Dsh }

// ConsumeActionPress reports each recorded press of the current frame once
func (r *Replayer) ConsumeActionPress() bool {
	if r.actions == 0 {
		return false
	}
	r.actions--
	return true
}

// ConsumeInteractPress reports each recorded press of the current frame once
func (r *Replayer) ConsumeInteractPress() bool {
	if r.interacts == 0 {
		return false
	}
	r.interacts--
	return true
}

// Blocking reports whether a dialog was open on the current frame
func (r *Replayer) Blocking() bool {
	return r.cur.B
}

// Done reports whether every frame has been polled
func (r *Replayer) Done() bool {
	return r.next >= len(r.data.Frames)
}

// CurrentFrame returns how many frames have been polled
func (r *Replayer) CurrentFrame() int {
	return r.next
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Stage returns the stage the replay was recorded on
func (r *Replayer) Stage() string {
	return r.data.Stage
}

// Reset rewinds to the beginning
func (r *Replayer) Reset() {
	r.next = 0
	r.cur = FrameInput{}
	r.actions, r.interacts = 0, 0
}
