package text

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/font"
)

// Box is the measured extent of a multi-line string.
type Box struct {
	Width  int
	Height int
}

type measureKey struct {
	fontPath string
	size     int
	text     string
}

// Measurer measures multi-line text and memoizes results in a bounded LRU
// cache keyed by (font, size, text). Measurement runs on every redraw and
// every pointer interaction, so the cache is load-bearing.
type Measurer struct {
	cache *lru.Cache[measureKey, Box]
}

// NewMeasurer builds a measurer with the given cache capacity.
func NewMeasurer(capacity int) *Measurer {
	cache, err := lru.New[measureKey, Box](capacity)
	if err != nil {
		// Only reachable with capacity <= 0.
		panic(err)
	}
	return &Measurer{cache: cache}
}

// Measure returns the extent of content rendered with the given font and
// size. Width is the widest line's advance, height is lines times the face's
// line height.
func (m *Measurer) Measure(fontPath string, size int, content string) (Box, error) {
	key := measureKey{fontPath: fontPath, size: size, text: content}
	if box, ok := m.cache.Get(key); ok {
		return box, nil
	}

	face, err := Face(fontPath, size)
	if err != nil {
		return Box{}, err
	}

	lineHeight := face.Metrics().Height.Ceil()
	var width int
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}

	box := Box{Width: width, Height: lineHeight * len(lines)}
	m.cache.Add(key, box)
	return box, nil
}

// CacheLen reports the number of memoized measurements.
func (m *Measurer) CacheLen() int {
	return m.cache.Len()
}
