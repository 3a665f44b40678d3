package keyframe

import (
	"fmt"
	"math"
	"sort"
)

// Default values used when a channel has no keyframes at all.
const (
	DefaultX        = 20
	DefaultY        = 20
	DefaultTextSize = 50
)

// Position is a text anchor point. It marshals as a two-element [x, y]
// sequence to match the sidecar document format.
type Position struct {
	X int
	Y int
}

func (p Position) MarshalYAML() (interface{}, error) {
	return []int{p.X, p.Y}, nil
}

func (p *Position) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var xy []int
	if err := unmarshal(&xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("position: expected [x, y], got %d elements", len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// Keyframe anchors explicit animation values to one frame index. Position and
// Size are independent channels; either may be nil, meaning "not set here".
type Keyframe struct {
	FrameIndex int       `yaml:"frame_index"`
	Position   *Position `yaml:"position"`
	Size       *int      `yaml:"size"`
}

// merge overwrites the channels that are set in other, keeping the rest.
func (k *Keyframe) merge(other Keyframe) {
	if other.Position != nil {
		pos := *other.Position
		k.Position = &pos
	}
	if other.Size != nil {
		size := *other.Size
		k.Size = &size
	}
}

func (k Keyframe) clone() Keyframe {
	out := Keyframe{FrameIndex: k.FrameIndex}
	out.merge(k)
	return out
}

// At builds a keyframe with both channels set. Convenience for callers and tests.
func At(frameIndex int, x, y, size int) Keyframe {
	return Keyframe{FrameIndex: frameIndex, Position: &Position{X: x, Y: y}, Size: &size}
}

// PosAt builds a position-only keyframe.
func PosAt(frameIndex int, x, y int) Keyframe {
	return Keyframe{FrameIndex: frameIndex, Position: &Position{X: x, Y: y}}
}

// SizeAt builds a size-only keyframe.
func SizeAt(frameIndex int, size int) Keyframe {
	return Keyframe{FrameIndex: frameIndex, Size: &size}
}

// Collection is a sparse set of keyframes, unique and sorted by frame index.
// The zero value is an empty collection ready for use.
type Collection struct {
	keyframes []Keyframe
}

// search returns the insertion index for frameIndex.
func (c *Collection) search(frameIndex int) int {
	return sort.Search(len(c.keyframes), func(i int) bool {
		return c.keyframes[i].FrameIndex >= frameIndex
	})
}

// Insert adds kf at its sorted position. If a keyframe already exists at the
// same frame index, the channels set in kf are merged into it; channels left
// nil in kf keep their existing values.
func (c *Collection) Insert(kf Keyframe) {
	i := c.search(kf.FrameIndex)
	if i < len(c.keyframes) && c.keyframes[i].FrameIndex == kf.FrameIndex {
		c.keyframes[i].merge(kf)
		return
	}
	c.keyframes = append(c.keyframes, Keyframe{})
	copy(c.keyframes[i+1:], c.keyframes[i:])
	c.keyframes[i] = kf.clone()
}

// Remove deletes the keyframe at frameIndex. No-op if none exists there.
func (c *Collection) Remove(frameIndex int) {
	i := c.search(frameIndex)
	if i < len(c.keyframes) && c.keyframes[i].FrameIndex == frameIndex {
		c.keyframes = append(c.keyframes[:i], c.keyframes[i+1:]...)
	}
}

// Get returns the explicit keyframe at frameIndex, if one exists. Callers use
// the ok flag to distinguish an explicit keyframe from an interpolated state.
func (c *Collection) Get(frameIndex int) (Keyframe, bool) {
	i := c.search(frameIndex)
	if i < len(c.keyframes) && c.keyframes[i].FrameIndex == frameIndex {
		return c.keyframes[i].clone(), true
	}
	return Keyframe{}, false
}

// Reset clears all keyframes.
func (c *Collection) Reset() {
	c.keyframes = nil
}

// Len returns the number of keyframes.
func (c *Collection) Len() int {
	return len(c.keyframes)
}

// Indices returns the frame indices of all keyframes in ascending order.
func (c *Collection) Indices() []int {
	indices := make([]int, len(c.keyframes))
	for i, kf := range c.keyframes {
		indices[i] = kf.FrameIndex
	}
	return indices
}

// Keyframes returns a copy of the stored keyframes in ascending order.
func (c *Collection) Keyframes() []Keyframe {
	out := make([]Keyframe, len(c.keyframes))
	for i, kf := range c.keyframes {
		out[i] = kf.clone()
	}
	return out
}

// sample is one (frame index, value) pair for a single channel.
type sample struct {
	index int
	value int
}

// Interpolate derives the full animation state at frameIndex. Each channel is
// interpolated independently over the keyframes that define it: linear between
// the bracketing pair with integer rounding, clamped flat outside the known
// range, channel default when no keyframe defines it. At an explicit keyframe
// this degenerates to the stored values.
func (c *Collection) Interpolate(frameIndex int) Keyframe {
	var xs, ys, sizes []sample
	for _, kf := range c.keyframes {
		if kf.Position != nil {
			xs = append(xs, sample{kf.FrameIndex, kf.Position.X})
			ys = append(ys, sample{kf.FrameIndex, kf.Position.Y})
		}
		if kf.Size != nil {
			sizes = append(sizes, sample{kf.FrameIndex, *kf.Size})
		}
	}

	pos := Position{X: DefaultX, Y: DefaultY}
	if len(xs) > 0 {
		pos.X = interpolateChannel(xs, frameIndex)
		pos.Y = interpolateChannel(ys, frameIndex)
	}

	size := DefaultTextSize
	if len(sizes) > 0 {
		size = interpolateChannel(sizes, frameIndex)
	}

	return Keyframe{FrameIndex: frameIndex, Position: &pos, Size: &size}
}

// interpolateChannel evaluates one channel at frameIndex. samples must be
// non-empty and sorted by index.
func interpolateChannel(samples []sample, frameIndex int) int {
	if frameIndex <= samples[0].index {
		return samples[0].value
	}
	last := samples[len(samples)-1]
	if frameIndex >= last.index {
		return last.value
	}

	for i := 0; i < len(samples)-1; i++ {
		prev, next := samples[i], samples[i+1]
		if frameIndex < prev.index || frameIndex >= next.index {
			continue
		}
		span := next.index - prev.index
		if span == 0 {
			return prev.value
		}
		t := float64(frameIndex-prev.index) / float64(span)
		return int(math.Round(lerp(float64(prev.value), float64(next.value), t)))
	}
	return last.value
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
