// Package overlay applies whole-sequence stamps, currently a QR watermark
// used by the batch path to tag exported GIFs with a source link.
package overlay

import (
	"fmt"
	"image"
	"image/draw"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/ashapiro/memeframe/internal/gif"
)

// Corner selects where a stamp lands on the frame.
type Corner string

const (
	TopLeft     Corner = "top-left"
	TopRight    Corner = "top-right"
	BottomLeft  Corner = "bottom-left"
	BottomRight Corner = "bottom-right"
)

// QRWatermark stamps a QR code encoding URL into one corner of every frame.
type QRWatermark struct {
	URL    string
	Size   int // edge length in pixels
	Corner Corner
	Margin int
}

// Apply draws the watermark onto every frame in place.
func (w QRWatermark) Apply(seq *gif.Sequence) error {
	if seq.Len() == 0 {
		return nil
	}

	code, err := qrcode.New(w.URL, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("qr watermark: %w", err)
	}
	stamp := code.Image(w.Size)

	bounds := seq.Bounds()
	offset, err := cornerOffset(w.Corner, bounds, w.Size, w.Margin)
	if err != nil {
		return err
	}
	target := image.Rectangle{Min: offset, Max: offset.Add(image.Point{X: w.Size, Y: w.Size})}

	for i := 0; i < seq.Len(); i++ {
		draw.Draw(seq.At(i).Image, target, stamp, stamp.Bounds().Min, draw.Over)
	}
	return nil
}

func cornerOffset(corner Corner, bounds image.Rectangle, size, margin int) (image.Point, error) {
	switch corner {
	case TopLeft:
		return image.Point{X: bounds.Min.X + margin, Y: bounds.Min.Y + margin}, nil
	case TopRight:
		return image.Point{X: bounds.Max.X - size - margin, Y: bounds.Min.Y + margin}, nil
	case BottomLeft:
		return image.Point{X: bounds.Min.X + margin, Y: bounds.Max.Y - size - margin}, nil
	case BottomRight, "":
		return image.Point{X: bounds.Max.X - size - margin, Y: bounds.Max.Y - size - margin}, nil
	}
	return image.Point{}, fmt.Errorf("unknown corner %q", corner)
}
