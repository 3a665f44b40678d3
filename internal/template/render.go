package template

import (
	"github.com/ashapiro/memeframe/internal/gif"
)

// Spiral returns the frame traversal order that starts at start and fans out:
// the active frame first, then near neighbors before far ones, alternating
// one step forward and one step backward until both directions are exhausted.
// Implemented as a two-pointer merge over [start, length) ascending and
// [start-1, -1) descending.
func Spiral(start, length int) []int {
	order := make([]int, 0, length)
	fwd, back := start, start-1

	if fwd < length {
		order = append(order, fwd)
		fwd++
	}
	for fwd < length || back >= 0 {
		if fwd < length {
			order = append(order, fwd)
			fwd++
		}
		if back >= 0 {
			order = append(order, back)
			back--
		}
	}
	return order
}

// Render composites every layer that has content onto every frame, one layer
// across the full sequence at a time. Per-frame stacking order is preserved:
// layer i draws onto every frame before layer i+1 touches any. Used by the
// batch export path.
func (m *MemeTemplate) Render(seq *gif.Sequence, content map[string]string) error {
	for _, t := range m.templates {
		value, ok := content[t.ID]
		if !ok {
			continue
		}
		if err := t.Render(seq, value); err != nil {
			return err
		}
	}
	return nil
}

// RenderSpiral composites all layers onto the sequence in spiral order from
// activeIndex, so an incremental-refresh viewer sees the displayed frame and
// its neighbors update first. refresh fires exactly once, immediately after
// the active frame is drawn and before any neighbor.
func (m *MemeTemplate) RenderSpiral(seq *gif.Sequence, content map[string]string,
	activeIndex int, refresh func()) error {

	for n, frameIndex := range Spiral(activeIndex, seq.Len()) {
		if err := m.renderFrame(seq, frameIndex, content); err != nil {
			return err
		}
		if n == 0 && refresh != nil {
			refresh()
		}
	}
	return nil
}

func (m *MemeTemplate) renderFrame(seq *gif.Sequence, frameIndex int, content map[string]string) error {
	for _, t := range m.templates {
		value, ok := content[t.ID]
		if !ok {
			continue
		}
		if err := t.RenderFrame(seq, frameIndex, value); err != nil {
			return err
		}
	}
	return nil
}
