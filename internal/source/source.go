// Package source builds frame sequences out of the supported inputs: animated
// GIFs, directories of still images, and PDF documents.
package source

import (
	"fmt"

	"github.com/ashapiro/memeframe/internal/gif"
)

// Source yields raster frames, one per page/image/frame of the input.
type Source interface {
	FrameCount() int
	Frame(index int) (gif.Frame, error)
	Close() error
}

// BuildSequence drains a source into a sequence.
func BuildSequence(src Source, loopForever bool) (*gif.Sequence, error) {
	count := src.FrameCount()
	if count == 0 {
		return nil, fmt.Errorf("source has no frames")
	}

	frames := make([]gif.Frame, 0, count)
	for i := 0; i < count; i++ {
		frame, err := src.Frame(i)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, frame)
	}
	return gif.FromFrames(frames, loopForever), nil
}

// GIFSource adapts an already-decoded sequence to the Source interface, so
// GIF input goes through the same path as stills and PDFs.
type GIFSource struct {
	seq *gif.Sequence
}

// NewGIFSource decodes the animated GIF at path.
func NewGIFSource(path string) (*GIFSource, error) {
	seq, err := gif.Open(path)
	if err != nil {
		return nil, err
	}
	return &GIFSource{seq: seq}, nil
}

func (s *GIFSource) FrameCount() int {
	return s.seq.Len()
}

func (s *GIFSource) Frame(index int) (gif.Frame, error) {
	return s.seq.At(index).Clone(), nil
}

func (s *GIFSource) Close() error {
	return nil
}
