// Package tracker propagates a user-marked region across frames and reports
// its frame-to-frame motion, so a caption can follow a moving subject.
package tracker

import (
	"fmt"
	"image"
)

// State of the region tracker.
type State int

const (
	// StateIdle: no region marked.
	StateIdle State = iota
	// StateRegionSelected: the user has dragged out a rectangle.
	StateRegionSelected
	// StateTracking: the algorithm is initialized and steps are legal.
	StateTracking
	// StateFailed: the last update failed; re-arm by selecting a new region.
	StateFailed
)

// Algorithm is a single-object visual tracker. Init locks onto the region in
// the given frame; Update finds it in the next frame, reporting ok=false when
// the track is lost.
type Algorithm interface {
	Init(frame *image.RGBA, region image.Rectangle) error
	Update(frame *image.RGBA) (image.Rectangle, bool)
}

// Tracker holds the drag rectangle and the algorithm instance. Begin and End
// are the drag corners, recorded live on pointer move.
type Tracker struct {
	Begin image.Point
	End   image.Point

	state        State
	alg          Algorithm
	newAlgorithm func() Algorithm
}

// New builds a tracker. factory creates the algorithm instance each time a
// region is armed; nil selects the built-in template matcher.
func New(factory func() Algorithm) *Tracker {
	if factory == nil {
		factory = func() Algorithm { return NewMatcher() }
	}
	return &Tracker{newAlgorithm: factory}
}

// State returns the current state.
func (t *Tracker) State() State {
	return t.state
}

// HasRegion reports whether a non-degenerate rectangle is marked.
func (t *Tracker) HasRegion() bool {
	return t.Begin != t.End
}

// Rect returns the marked rectangle in canonical form.
func (t *Tracker) Rect() image.Rectangle {
	return image.Rect(t.Begin.X, t.Begin.Y, t.End.X, t.End.Y)
}

// Center returns the center of the marked rectangle.
func (t *Tracker) Center() image.Point {
	return image.Point{
		X: (t.Begin.X + t.End.X) / 2,
		Y: (t.Begin.Y + t.End.Y) / 2,
	}
}

// BeginDrag starts a new region at p, discarding any previous one.
func (t *Tracker) BeginDrag(p image.Point) {
	t.Begin, t.End = p, p
	t.alg = nil
	t.state = StateIdle
}

// DragTo moves the region's floating corner to p.
func (t *Tracker) DragTo(p image.Point) {
	t.End = p
	if t.HasRegion() {
		t.state = StateRegionSelected
	}
}

// Arm initializes the algorithm against the current frame's pixels cropped to
// the marked rectangle. Legal once a region is selected.
func (t *Tracker) Arm(frame *image.RGBA) error {
	if !t.HasRegion() {
		return fmt.Errorf("tracker: no region selected")
	}
	alg := t.newAlgorithm()
	if err := alg.Init(frame, t.Rect()); err != nil {
		t.Reset()
		return fmt.Errorf("tracker init: %w", err)
	}
	t.alg = alg
	t.state = StateTracking
	return nil
}

// Step advances the track into next. It returns the displacement of the
// region's center. On tracker failure the region is cleared, the state moves
// to Failed and the delta is zero, so no keyframe gets corrupted downstream.
func (t *Tracker) Step(next *image.RGBA) (image.Point, bool) {
	if t.state != StateTracking || t.alg == nil {
		return image.Point{}, false
	}

	oldCenter := t.Center()
	rect, ok := t.alg.Update(next)
	if !ok {
		t.Reset()
		t.state = StateFailed
		return image.Point{}, false
	}

	t.Begin, t.End = rect.Min, rect.Max
	return t.Center().Sub(oldCenter), true
}

// Reset clears the region and drops the algorithm instance.
func (t *Tracker) Reset() {
	t.Begin, t.End = image.Point{}, image.Point{}
	t.alg = nil
	t.state = StateIdle
}
