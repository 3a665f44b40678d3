package gif

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	stdgif "image/gif"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/ashapiro/memeframe/internal/system"
)

// Open decodes an animated GIF into a sequence of full coalesced RGBA frames.
// Per-frame delays are converted from the GIF's 10ms units to milliseconds.
// The loop flag maps encoded loop count 0 to "loop forever" and anything else
// to "play once"; Save uses the inverse mapping so round trips are stable.
func Open(path string) (*Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gif: %w", err)
	}
	defer f.Close()

	g, err := stdgif.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("decode gif %s: %w", path, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("decode gif %s: no frames", path)
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}

	// GIF frames may be partial updates over the previous canvas. Coalesce
	// them so every Frame is a complete image.
	canvas := image.NewRGBA(bounds)
	frames := make([]Frame, 0, len(g.Image))
	for i, paletted := range g.Image {
		var restore *image.RGBA
		if i < len(g.Disposal) && g.Disposal[i] == stdgif.DisposalPrevious {
			restore = image.NewRGBA(bounds)
			copy(restore.Pix, canvas.Pix)
		}

		draw.Draw(canvas, paletted.Bounds(), paletted, paletted.Bounds().Min, draw.Over)

		snapshot := image.NewRGBA(bounds)
		copy(snapshot.Pix, canvas.Pix)

		duration := 100 // GIF default when no delay is declared
		if i < len(g.Delay) {
			duration = g.Delay[i] * 10
		}
		frames = append(frames, Frame{Image: snapshot, Duration: duration})

		if i < len(g.Disposal) {
			switch g.Disposal[i] {
			case stdgif.DisposalBackground:
				draw.Draw(canvas, paletted.Bounds(), image.Transparent, image.Point{}, draw.Src)
			case stdgif.DisposalPrevious:
				canvas = restore
			}
		}
	}

	return &Sequence{frames: frames, LoopForever: g.LoopCount == 0}, nil
}

// Save re-encodes the sequence as an animated GIF. Palettization is the
// expensive part and each frame is independent, so frames are quantized in
// parallel; the worker count comes from the system package. The sequence is
// only read here.
func (s *Sequence) Save(path string) error {
	if len(s.frames) == 0 {
		return fmt.Errorf("save gif %s: empty sequence", path)
	}

	out := &stdgif.GIF{
		Image: make([]*image.Paletted, len(s.frames)),
		Delay: make([]int, len(s.frames)),
	}
	if s.LoopForever {
		out.LoopCount = 0
	} else {
		out.LoopCount = -1
	}

	var g errgroup.Group
	g.SetLimit(system.PaletteWorkers(s.Bounds()))
	for i, frame := range s.frames {
		g.Go(func() error {
			paletted := image.NewPaletted(frame.Image.Rect, palette.Plan9)
			draw.FloydSteinberg.Draw(paletted, frame.Image.Rect, frame.Image, frame.Image.Rect.Min)
			out.Image[i] = paletted
			out.Delay[i] = frame.Duration / 10
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gif: %w", err)
	}
	defer f.Close()

	if err := stdgif.EncodeAll(f, out); err != nil {
		return fmt.Errorf("encode gif %s: %w", path, err)
	}
	return nil
}
