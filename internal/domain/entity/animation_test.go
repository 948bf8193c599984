package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClips() map[string]Clip {
	return map[string]Clip{
		AnimIdle:   {Frames: 2, FrameTime: 0.5, Loop: true},
		AnimAttack: {Frames: 3, FrameTime: 0.1},
		AnimHurt:   {Frames: 0, FrameTime: 0.2},
	}
}

func TestAnimator_Play(t *testing.T) {
	a := NewAnimator(testClips())
	assert.Empty(t, a.Current())

	assert.False(t, a.Play("swim"), "unknown clip")
	assert.Empty(t, a.Current())

	require.True(t, a.Play(AnimIdle))
	a.Update(0.6)
	assert.Equal(t, 1, a.Frame())

	require.True(t, a.Play(AnimIdle))
	assert.Equal(t, 1, a.Frame(), "playing the current clip does not restart it")

	require.True(t, a.Restart(AnimIdle))
	assert.Equal(t, 0, a.Frame())
}

func TestAnimator_Loop(t *testing.T) {
	a := NewAnimator(testClips())
	a.Play(AnimIdle)

	for i := 0; i < 10; i++ {
		assert.False(t, a.Update(0.5))
	}
	assert.False(t, a.Finished())
	assert.Equal(t, 0, a.Frame())
	assert.True(t, a.Interruptible())
}

func TestAnimator_OneShot(t *testing.T) {
	a := NewAnimator(testClips())
	a.Play(AnimAttack)
	assert.False(t, a.Interruptible())

	assert.False(t, a.Update(0.15))
	assert.Equal(t, 1, a.Frame())

	assert.True(t, a.Update(0.2), "completion is reported once")
	assert.True(t, a.Finished())
	assert.Equal(t, 2, a.Frame(), "holds the last frame")
	assert.True(t, a.Interruptible())

	assert.False(t, a.Update(1))
}

func TestAnimator_MinimumOneFrame(t *testing.T) {
	a := NewAnimator(testClips())
	a.Play(AnimHurt)

	assert.True(t, a.Update(0.2))
	assert.Equal(t, 0, a.Frame())
}

func TestAnimator_ZeroValue(t *testing.T) {
	var a Animator
	assert.False(t, a.Update(1))
	assert.True(t, a.Interruptible())
	assert.False(t, a.Has(AnimIdle))

	a.Add(AnimRun, Clip{Frames: 4, FrameTime: 0.1, Loop: true})
	assert.True(t, a.Has(AnimRun))
	assert.True(t, a.Play(AnimRun))
}
