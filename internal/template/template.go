// Package template implements animated text layers and the layer set that
// composites them onto a frame sequence.
package template

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/ashapiro/memeframe/internal/gif"
	"github.com/ashapiro/memeframe/internal/keyframe"
	"github.com/ashapiro/memeframe/internal/system"
	"github.com/ashapiro/memeframe/internal/text"
)

// backgroundMargin pads the background rectangle around the measured text box.
const backgroundMargin = 10

// measureCacheSize bounds the per-layer measurement cache.
const measureCacheSize = 32

// TextTemplate is one styled, independently animated caption layer.
type TextTemplate struct {
	ID        string
	Text      string // default render content, starts as ID
	Keyframes *keyframe.Collection

	FontPath        string
	TextColor       string
	BackgroundColor string // empty = no background
	StrokeWidth     int
	StrokeColor     string

	measurer *text.Measurer
}

// NewTextTemplate builds a layer with the default style: white fill, 2px
// black outline, no background, built-in font.
func NewTextTemplate(id string) *TextTemplate {
	return &TextTemplate{
		ID:          id,
		Text:        id,
		Keyframes:   &keyframe.Collection{},
		TextColor:   "#FFF",
		StrokeWidth: 2,
		StrokeColor: "#000",
		measurer:    text.NewMeasurer(measureCacheSize),
	}
}

// BoundingBox returns the rectangle occupied by content at the given font
// size, centered at center. Measurement results are cached.
func (t *TextTemplate) BoundingBox(center keyframe.Position, fontSize int, content string) (image.Rectangle, error) {
	box, err := t.measurer.Measure(t.FontPath, fontSize, content)
	if err != nil {
		return image.Rectangle{}, err
	}
	x := center.X - box.Width/2
	y := center.Y - box.Height/2
	return image.Rect(x, y, x+box.Width, y+box.Height), nil
}

// RenderFrame draws content onto the frame at frameIndex, in place, using the
// interpolated position and size for that frame. The keyframe store is only
// queried, never mutated.
func (t *TextTemplate) RenderFrame(seq *gif.Sequence, frameIndex int, content string) error {
	state := t.Keyframes.Interpolate(frameIndex)
	box, err := t.BoundingBox(*state.Position, *state.Size, content)
	if err != nil {
		return fmt.Errorf("layer %s: %w", t.ID, err)
	}

	face, err := text.Face(t.FontPath, *state.Size)
	if err != nil {
		return fmt.Errorf("layer %s: %w", t.ID, err)
	}
	fill, err := text.ParseHexColor(t.TextColor)
	if err != nil {
		return fmt.Errorf("layer %s: %w", t.ID, err)
	}
	stroke, err := text.ParseHexColor(t.StrokeColor)
	if err != nil {
		return fmt.Errorf("layer %s: %w", t.ID, err)
	}

	frame := seq.At(frameIndex)

	// Compose on a transparent overlay, then blend over the frame, so a
	// translucent background color behaves correctly.
	overlay := system.GetImage(frame.Bounds())
	defer system.PutImage(overlay)

	if t.BackgroundColor != "" {
		bg, err := text.ParseHexColor(t.BackgroundColor)
		if err != nil {
			return fmt.Errorf("layer %s: %w", t.ID, err)
		}
		bgRect := box.Inset(-backgroundMargin)
		draw.Draw(overlay, bgRect, image.NewUniform(bg), image.Point{}, draw.Src)
	}

	text.DrawMultiline(overlay, box.Min.X, box.Min.Y, box.Dx(), content, face,
		fill, t.StrokeWidth, stroke)

	draw.Draw(frame.Image, frame.Bounds(), overlay, frame.Bounds().Min, draw.Over)
	return nil
}

// Render draws content onto every frame of the sequence in order.
func (t *TextTemplate) Render(seq *gif.Sequence, content string) error {
	for i := 0; i < seq.Len(); i++ {
		if err := t.RenderFrame(seq, i, content); err != nil {
			return err
		}
	}
	return nil
}
