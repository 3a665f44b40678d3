package source

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/ashapiro/memeframe/internal/gif"
)

// ImageSource turns a directory of still images (or a single image file)
// into frames with a fixed display duration.
type ImageSource struct {
	paths    []string
	duration int // ms per frame
}

// NewImageSource collects the .jpg/.jpeg/.png files under path in name order.
func NewImageSource(path string, frameDuration int) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			switch filepath.Ext(entry.Name()) {
			case ".jpg", ".jpeg", ".png":
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	return &ImageSource{paths: paths, duration: frameDuration}, nil
}

func (s *ImageSource) FrameCount() int {
	return len(s.paths)
}

func (s *ImageSource) Frame(index int) (gif.Frame, error) {
	f, err := os.Open(s.paths[index])
	if err != nil {
		return gif.Frame{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return gif.Frame{}, err
	}
	return gif.Frame{Image: toRGBA(img), Duration: s.duration}, nil
}

func (s *ImageSource) Close() error {
	return nil
}

// toRGBA normalizes any decoded image to *image.RGBA anchored at the origin.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Rect, img, bounds.Min, draw.Src)
	return rgba
}
