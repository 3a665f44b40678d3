package session

import (
	"fmt"
	"strconv"

	"github.com/ashapiro/memeframe/internal/keyframe"
)

// PlaceText anchors the selected layer's center at (x, y) on the active
// frame, as an explicit position keyframe.
func (s *Session) PlaceText(x, y int) {
	s.Selected().Keyframes.Insert(keyframe.PosAt(s.frameIndex, x, y))
}

// SetKeyframeFields applies raw form input to the keyframe at the current
// frame. Empty strings leave a channel unset; at least one channel must be
// given, and x and y must be given together. Malformed numbers abort the
// whole operation before any state changes.
func (s *Session) SetKeyframeFields(frameStr, xStr, yStr, sizeStr string) error {
	if xStr == "" && yStr == "" && sizeStr == "" {
		return fmt.Errorf("%w: no fields to set", ErrInvalidInput)
	}

	frameIndex := s.frameIndex
	if frameStr != "" {
		var err error
		if frameIndex, err = parseField("frame", frameStr); err != nil {
			return err
		}
	}
	if frameIndex < 0 || frameIndex >= s.original.Len() {
		return fmt.Errorf("%w: frame %d", ErrOutOfRange, frameIndex)
	}

	kf := keyframe.Keyframe{FrameIndex: frameIndex}

	if (xStr == "") != (yStr == "") {
		return fmt.Errorf("%w: x and y must be set together", ErrInvalidInput)
	}
	if xStr != "" {
		x, err := parseField("x", xStr)
		if err != nil {
			return err
		}
		y, err := parseField("y", yStr)
		if err != nil {
			return err
		}
		kf.Position = &keyframe.Position{X: x, Y: y}
	}

	if sizeStr != "" {
		size, err := parseField("size", sizeStr)
		if err != nil {
			return err
		}
		if size <= 0 {
			return fmt.Errorf("%w: size must be positive", ErrInvalidInput)
		}
		kf.Size = &size
	}

	s.Selected().Keyframes.Insert(kf)
	return nil
}

// ToggleKeyframe pins or unpins the active frame for the selected layer.
// Pinning stores the interpolated state as an explicit keyframe; unpinning
// removes the explicit keyframe.
func (s *Session) ToggleKeyframe() {
	kfs := s.Selected().Keyframes
	if _, ok := kfs.Get(s.frameIndex); ok {
		kfs.Remove(s.frameIndex)
		return
	}
	kfs.Insert(kfs.Interpolate(s.frameIndex))
}

// IsKeyframe reports whether the active frame is an explicit keyframe of the
// selected layer, as opposed to an interpolated state.
func (s *Session) IsKeyframe() bool {
	_, ok := s.Selected().Keyframes.Get(s.frameIndex)
	return ok
}

// ResetKeyframes clears the selected layer's animation.
func (s *Session) ResetKeyframes() {
	s.Selected().Keyframes.Reset()
}

func parseField(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidInput, name, value)
	}
	return n, nil
}
