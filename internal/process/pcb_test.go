package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagesMax(t *testing.T) {
	p := New(0, 7)
	assert.Equal(t, 3, p.PagesMax)
	assert.Equal(t, 0, p.PagesLoaded)
	for _, f := range p.PageTable {
		assert.Equal(t, UnloadedFrame, f)
	}
}

func TestNewEmptyScript(t *testing.T) {
	p := New(0, 0)
	assert.Equal(t, 0, p.PagesMax)
	assert.True(t, p.Done())
}

func TestPageAndOffset(t *testing.T) {
	p := New(10, 9)
	p.PC = 4
	page, offset := p.Page()
	assert.Equal(t, 1, page)
	assert.Equal(t, 1, offset)
}

func TestSetFrameAndClearFrame(t *testing.T) {
	p := New(0, 6)
	assert.Equal(t, UnloadedFrame, p.FrameFor(0))

	p.SetFrame(0, 5)
	assert.Equal(t, 5, p.FrameFor(0))
	assert.Equal(t, 1, p.PagesLoaded)

	p.SetFrame(0, 5)
	assert.Equal(t, 1, p.PagesLoaded, "re-setting the same page must not double-count")

	p.ClearFrame(0)
	assert.Equal(t, UnloadedFrame, p.FrameFor(0))
	assert.Equal(t, 0, p.PagesLoaded)
}

func TestDone(t *testing.T) {
	p := New(0, 2)
	assert.False(t, p.Done())
	p.PC = 1
	assert.False(t, p.Done())
	p.PC = 2
	assert.True(t, p.Done())
}

func TestRegistryFixUpEvictedFrame(t *testing.T) {
	reg := NewRegistry()
	a := New(0, 3)
	b := New(3, 3)
	a.SetFrame(0, 7)
	b.SetFrame(0, 7)
	reg.Add(a)
	reg.Add(b)

	reg.FixUpEvictedFrame(7)

	assert.Equal(t, UnloadedFrame, a.FrameFor(0))
	assert.Equal(t, UnloadedFrame, b.FrameFor(0))
}

func TestRegistryAddRemove(t *testing.T) {
	reg := NewRegistry()
	a := New(0, 3)
	reg.Add(a)

	seen := 0
	reg.ForEach(func(*PCB) { seen++ })
	assert.Equal(t, 1, seen)

	reg.Remove(a)
	seen = 0
	reg.ForEach(func(*PCB) { seen++ })
	assert.Equal(t, 0, seen)
}

func TestNewAssignsUniquePIDs(t *testing.T) {
	a := New(0, 1)
	b := New(0, 1)
	assert.NotEqual(t, a.PID, b.PID)
}
