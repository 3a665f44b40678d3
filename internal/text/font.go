// Package text wraps font loading, multi-line measurement and outlined text
// drawing on top of golang.org/x/image/font.
package text

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type faceKey struct {
	path string
	size int
}

var (
	fontMu sync.Mutex
	fonts  = map[string]*opentype.Font{}
	faces  = map[faceKey]font.Face{}
)

// loadFont parses the TTF/OTF file at path, caching the result. An empty path
// selects the embedded Go Regular fallback.
func loadFont(path string) (*opentype.Font, error) {
	if f, ok := fonts[path]; ok {
		return f, nil
	}

	data := goregular.TTF
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	fonts[path] = f
	return f, nil
}

// Face returns a render face for the font at path scaled to size pixels.
// Faces are cached; they are not safe for concurrent use, which matches the
// single-writer discipline of the render path.
func Face(path string, size int) (font.Face, error) {
	fontMu.Lock()
	defer fontMu.Unlock()

	key := faceKey{path: path, size: size}
	if face, ok := faces[key]; ok {
		return face, nil
	}

	f, err := loadFont(path)
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build face %s@%d: %w", path, size, err)
	}
	faces[key] = face
	return face, nil
}
