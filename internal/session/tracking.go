package session

import (
	"fmt"
	"image"

	"github.com/ashapiro/memeframe/internal/keyframe"
	"github.com/ashapiro/memeframe/internal/tracker"
)

// Direction of a track step.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Tracker exposes the tracking state for UI drawing (selection rectangle).
func (s *Session) Tracker() *tracker.Tracker {
	return s.track
}

// TrackMode reports whether tracking mode is on.
func (s *Session) TrackMode() bool {
	return s.trackMode
}

// EnterTrackMode switches tracking mode on with a clean region.
func (s *Session) EnterTrackMode() {
	s.track.Reset()
	s.trackMode = true
}

// LeaveTrackMode switches tracking mode off and discards any region.
func (s *Session) LeaveTrackMode() {
	s.track.Reset()
	s.trackMode = false
}

// TrackDragStart begins the region rectangle at p.
func (s *Session) TrackDragStart(p image.Point) {
	if s.trackMode {
		s.track.BeginDrag(p)
	}
}

// TrackDragMove moves the region's floating corner to p.
func (s *Session) TrackDragMove(p image.Point) {
	if s.trackMode {
		s.track.DragTo(p)
	}
}

// TrackDragEnd finishes the drag and arms the tracker against the active
// frame's pristine pixels.
func (s *Session) TrackDragEnd(p image.Point) error {
	if !s.trackMode {
		return ErrNotTracking
	}
	s.track.DragTo(p)
	if !s.track.HasRegion() {
		return fmt.Errorf("tracker: empty selection")
	}
	return s.track.Arm(s.original.At(s.frameIndex).Image)
}

// TrackStep follows the tracked region one frame forward or backward and
// feeds the motion back as a position keyframe: the new keyframe at the next
// frame is the current frame's (possibly interpolated) position plus the
// region's center delta. The active frame advances on success.
//
// A failed tracker update clears the region, leaves every previously written
// keyframe untouched and reports ErrTrackingLost with a zero delta.
func (s *Session) TrackStep(dir Direction) (image.Point, error) {
	if !s.trackMode || s.track.State() != tracker.StateTracking {
		return image.Point{}, ErrNotTracking
	}

	next := s.frameIndex + int(dir)
	if next < 0 || next >= s.original.Len() {
		return image.Point{}, fmt.Errorf("%w: %d of %d", ErrOutOfRange, next, s.original.Len())
	}

	// Position reference at the current frame: the explicit keyframe if one
	// exists, otherwise the interpolated state.
	ref := *s.Selected().Keyframes.Interpolate(s.frameIndex).Position

	delta, ok := s.track.Step(s.original.At(next).Image)
	if !ok {
		return image.Point{}, ErrTrackingLost
	}

	s.Selected().Keyframes.Insert(keyframe.PosAt(next, ref.X+delta.X, ref.Y+delta.Y))
	s.frameIndex = next
	return delta, nil
}
