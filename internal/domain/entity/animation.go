package entity

// Clip describes one animation.
type Clip struct {
	Frames    int
	FrameTime float64 // seconds per frame
	Loop      bool
}

// Common clip ids
const (
	AnimIdle   = "idle"
	AnimRun    = "run"
	AnimJump   = "jump"
	AnimFall   = "fall"
	AnimDash   = "dash"
	AnimAttack = "attack"
	AnimHurt   = "hurt"
	AnimDeath  = "death"
	AnimPatrol = "patrol"
	AnimChase  = "chase"
)

// Animator advances frame indices for a set of clips.
type Animator struct {
	clips    map[string]Clip
	current  string
	frame    int
	elapsed  float64
	finished bool
}

// NewAnimator creates an animator with the given clips. Nothing plays until Play.
func NewAnimator(clips map[string]Clip) Animator {
	a := Animator{clips: make(map[string]Clip, len(clips))}
	for id, c := range clips {
		a.Add(id, c)
	}
	return a
}

// Add registers or replaces a clip
func (a *Animator) Add(id string, c Clip) {
	if a.clips == nil {
		a.clips = make(map[string]Clip)
	}
	if c.Frames < 1 {
		c.Frames = 1
	}
	a.clips[id] = c
}

// Has reports whether a clip is registered
func (a *Animator) Has(id string) bool {
	_, ok := a.clips[id]
	return ok
}

// Play switches to the clip unless it is already playing.
// Unknown ids are ignored and report false.
func (a *Animator) Play(id string) bool {
	if _, ok := a.clips[id]; !ok {
		return false
	}
	if a.current == id {
		return true
	}
	a.start(id)
	return true
}

// Restart plays the clip from its first frame even if it is current.
func (a *Animator) Restart(id string) bool {
	if _, ok := a.clips[id]; !ok {
		return false
	}
	a.start(id)
	return true
}

func (a *Animator) start(id string) {
	a.current = id
	a.frame = 0
	a.elapsed = 0
	a.finished = false
}

// Update advances the current clip. It returns true on the one tick a
// non-looping clip completes.
func (a *Animator) Update(dt float64) bool {
	clip, ok := a.clips[a.current]
	if !ok || a.finished || clip.FrameTime <= 0 {
		return false
	}

	a.elapsed += dt
	for a.elapsed >= clip.FrameTime {
		a.elapsed -= clip.FrameTime
		a.frame++
		if a.frame < clip.Frames {
			continue
		}
		if clip.Loop {
			a.frame = 0
			continue
		}
		a.frame = clip.Frames - 1
		a.elapsed = 0
		a.finished = true
		return true
	}
	return false
}

// Current returns the id of the playing clip
func (a *Animator) Current() string { return a.current }

// Frame returns the current frame index
func (a *Animator) Frame() int { return a.frame }

// Finished reports whether a non-looping clip has completed
func (a *Animator) Finished() bool { return a.finished }

// Interruptible reports whether another clip may replace the current one.
// A non-looping clip still playing is not interruptible.
func (a *Animator) Interruptible() bool {
	clip, ok := a.clips[a.current]
	if !ok {
		return true
	}
	return clip.Loop || a.finished
}
