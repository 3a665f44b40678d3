package tracker

import (
	"fmt"
	"image"
	"math"
)

// Matcher is the built-in Algorithm: normalized cross-correlation template
// matching over a bounded search window around the last known position. It
// handles translation only, which is what carrying a caption along with a
// subject needs; it reports failure when the best correlation is too weak,
// e.g. when the subject left the window or the region is featureless.
type Matcher struct {
	template []float64 // zero-mean grayscale patch
	tmplNorm float64
	rect     image.Rectangle

	SearchRadius int
	MinScore     float64
}

// NewMatcher builds a matcher with default search radius and score threshold.
func NewMatcher() *Matcher {
	return &Matcher{
		SearchRadius: 32,
		MinScore:     0.5,
	}
}

// Init crops the region out of frame as the reference template.
func (m *Matcher) Init(frame *image.RGBA, region image.Rectangle) error {
	region = region.Canon().Intersect(frame.Bounds())
	if region.Dx() < 2 || region.Dy() < 2 {
		return fmt.Errorf("matcher: region %v too small", region)
	}

	patch := grayPatch(frame, region)
	mean := meanOf(patch)
	var norm float64
	for i := range patch {
		patch[i] -= mean
		norm += patch[i] * patch[i]
	}
	if norm == 0 {
		return fmt.Errorf("matcher: region %v has no texture", region)
	}

	m.template = patch
	m.tmplNorm = math.Sqrt(norm)
	m.rect = region
	return nil
}

// Update scans frame for the template around the last known position and
// returns the best-matching rectangle.
func (m *Matcher) Update(frame *image.RGBA) (image.Rectangle, bool) {
	if m.template == nil {
		return image.Rectangle{}, false
	}

	w, h := m.rect.Dx(), m.rect.Dy()
	bounds := frame.Bounds()

	bestScore := -1.0
	var bestMin image.Point

	for dy := -m.SearchRadius; dy <= m.SearchRadius; dy++ {
		for dx := -m.SearchRadius; dx <= m.SearchRadius; dx++ {
			min := m.rect.Min.Add(image.Point{X: dx, Y: dy})
			candidate := image.Rectangle{Min: min, Max: min.Add(image.Point{X: w, Y: h})}
			if !candidate.In(bounds) {
				continue
			}
			score := m.correlate(frame, candidate)
			if score > bestScore {
				bestScore = score
				bestMin = min
			}
		}
	}

	if bestScore < m.MinScore {
		return image.Rectangle{}, false
	}

	m.rect = image.Rectangle{Min: bestMin, Max: bestMin.Add(image.Point{X: w, Y: h})}
	return m.rect, true
}

// correlate computes the normalized cross-correlation between the template
// and the frame patch at candidate. Scores are in [-1, 1]; a featureless
// candidate scores 0.
func (m *Matcher) correlate(frame *image.RGBA, candidate image.Rectangle) float64 {
	patch := grayPatch(frame, candidate)
	mean := meanOf(patch)

	var dot, norm float64
	for i := range patch {
		v := patch[i] - mean
		dot += v * m.template[i]
		norm += v * v
	}
	if norm == 0 {
		return 0
	}
	return dot / (math.Sqrt(norm) * m.tmplNorm)
}

// grayPatch extracts rect from frame as luma values. rect must lie inside the
// frame bounds.
func grayPatch(frame *image.RGBA, rect image.Rectangle) []float64 {
	patch := make([]float64, 0, rect.Dx()*rect.Dy())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		row := frame.Pix[frame.PixOffset(rect.Min.X, y):frame.PixOffset(rect.Max.X, y)]
		for x := 0; x < len(row); x += 4 {
			r, g, b := float64(row[x]), float64(row[x+1]), float64(row[x+2])
			patch = append(patch, 0.299*r+0.587*g+0.114*b)
		}
	}
	return patch
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
