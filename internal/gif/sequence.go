package gif

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// ErrDimensionMismatch is returned when sequences with different frame
// dimensions are concatenated.
var ErrDimensionMismatch = errors.New("sequences have different frame dimensions")

// Frame is one raster image of an animation plus its display duration in
// milliseconds.
type Frame struct {
	Image    *image.RGBA
	Duration int
}

// Clone deep-copies the frame's pixel buffer.
func (f Frame) Clone() Frame {
	img := image.NewRGBA(f.Image.Rect)
	copy(img.Pix, f.Image.Pix)
	return Frame{Image: img, Duration: f.Duration}
}

// Bounds returns the frame's pixel rectangle.
func (f Frame) Bounds() image.Rectangle {
	return f.Image.Bounds()
}

// Sequence is an ordered, index-addressable list of frames. Frames are owned
// by the sequence; rendering mutates them in place, so callers that need the
// pristine frames keep a Copy.
type Sequence struct {
	frames      []Frame
	LoopForever bool
}

// FromFrames builds a sequence from a frame list. Frames are taken as-is, not
// copied.
func FromFrames(frames []Frame, loopForever bool) *Sequence {
	return &Sequence{frames: frames, LoopForever: loopForever}
}

// Len returns the number of frames.
func (s *Sequence) Len() int {
	return len(s.frames)
}

// At returns the frame at index i. The returned frame shares its pixel buffer
// with the sequence; drawing into it mutates the sequence.
func (s *Sequence) At(i int) Frame {
	return s.frames[i]
}

// Set replaces the frame at index i in place.
func (s *Sequence) Set(i int, f Frame) {
	s.frames[i] = f
}

// Copy deep-copies all frames and the loop flag. Used before destructive
// in-place edits so the original stays available for reset.
func (s *Sequence) Copy() *Sequence {
	frames := make([]Frame, len(s.frames))
	for i, f := range s.frames {
		frames[i] = f.Clone()
	}
	return &Sequence{frames: frames, LoopForever: s.LoopForever}
}

// Slice returns a new sequence holding deep copies of frames [from, to).
func (s *Sequence) Slice(from, to int) (*Sequence, error) {
	if from < 0 || to > len(s.frames) || from > to {
		return nil, fmt.Errorf("slice [%d, %d) out of range for %d frames", from, to, len(s.frames))
	}
	frames := make([]Frame, 0, to-from)
	for _, f := range s.frames[from:to] {
		frames = append(frames, f.Clone())
	}
	return &Sequence{frames: frames, LoopForever: s.LoopForever}, nil
}

// Concat returns a new sequence of a's frames followed by b's. Both inputs are
// deep-copied. Mismatched frame dimensions are an explicit error, never a
// silently corrupt frame array.
func Concat(a, b *Sequence) (*Sequence, error) {
	if a.Len() > 0 && b.Len() > 0 {
		if !a.frames[0].Bounds().Size().Eq(b.frames[0].Bounds().Size()) {
			return nil, fmt.Errorf("%w: %v vs %v", ErrDimensionMismatch,
				a.frames[0].Bounds().Size(), b.frames[0].Bounds().Size())
		}
	}
	frames := make([]Frame, 0, a.Len()+b.Len())
	for _, f := range a.frames {
		frames = append(frames, f.Clone())
	}
	for _, f := range b.frames {
		frames = append(frames, f.Clone())
	}
	return &Sequence{frames: frames, LoopForever: a.LoopForever}, nil
}

// Bounds returns the pixel rectangle of the first frame, or the zero
// rectangle for an empty sequence.
func (s *Sequence) Bounds() image.Rectangle {
	if len(s.frames) == 0 {
		return image.Rectangle{}
	}
	return s.frames[0].Bounds()
}

// Durations returns the per-frame durations in milliseconds.
func (s *Sequence) Durations() []int {
	out := make([]int, len(s.frames))
	for i, f := range s.frames {
		out[i] = f.Duration
	}
	return out
}

// SolidFrame builds a uniformly colored frame. Mostly used by tests and the
// still-image sources.
func SolidFrame(w, h int, c image.Image, duration int) Frame {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Rect, c, image.Point{}, draw.Src)
	return Frame{Image: img, Duration: duration}
}
