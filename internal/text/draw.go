package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ParseHexColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA".
func ParseHexColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("color %q: missing '#'", s)
	}
	digits := s[1:]

	// Expand the short form so one parse loop handles everything.
	if len(digits) == 3 {
		digits = string([]byte{
			digits[0], digits[0],
			digits[1], digits[1],
			digits[2], digits[2],
		})
	}
	if len(digits) != 6 && len(digits) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: bad length", s)
	}

	var vals [4]uint8
	vals[3] = 0xff
	for i := 0; i < len(digits)/2; i++ {
		hi, ok1 := hexDigit(digits[2*i])
		lo, ok2 := hexDigit(digits[2*i+1])
		if !ok1 || !ok2 {
			return color.RGBA{}, fmt.Errorf("color %q: invalid hex digit", s)
		}
		vals[i] = hi<<4 | lo
	}

	return color.RGBA{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// DrawMultiline renders content into dst inside the box whose top-left corner
// is (x, y) and whose width is boxWidth. Each line is centered horizontally.
// Lines are drawn from the bottom of the box upward; the stroke pass for a
// line goes under its fill pass. strokeWidth 0 disables the outline.
func DrawMultiline(dst draw.Image, x, y, boxWidth int, content string, face font.Face,
	fill color.Color, strokeWidth int, stroke color.Color) {

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	lines := strings.Split(content, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := lines[i]
		lineWidth := font.MeasureString(face, line).Ceil()
		lx := x + (boxWidth-lineWidth)/2
		baseline := y + i*lineHeight + ascent

		if strokeWidth > 0 {
			drawStroke(dst, lx, baseline, line, face, strokeWidth, stroke)
		}
		drawLine(dst, lx, baseline, line, face, fill)
	}
}

// drawStroke approximates an outline by stamping the line at every integer
// offset within the stroke radius.
func drawStroke(dst draw.Image, x, baseline int, line string, face font.Face,
	width int, c color.Color) {

	for dy := -width; dy <= width; dy++ {
		for dx := -width; dx <= width; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if dx*dx+dy*dy > width*width {
				continue
			}
			drawLine(dst, x+dx, baseline+dy, line, face, c)
		}
	}
}

func drawLine(dst draw.Image, x, baseline int, line string, face font.Face, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(line)
}
