package source

import (
	"github.com/gen2brain/go-fitz"

	"github.com/ashapiro/memeframe/internal/gif"
)

// FitzPDFSource renders PDF pages as frames via go-fitz, one page per frame.
// Useful for captioning a slideshow built from a document.
type FitzPDFSource struct {
	doc      *fitz.Document
	path     string
	dpi      int
	duration int // ms per frame
}

// NewFitzPDFSource opens the PDF at path. Pages render at the given DPI and
// display for frameDuration milliseconds each.
func NewFitzPDFSource(path string, dpi, frameDuration int) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &FitzPDFSource{doc: doc, path: path, dpi: dpi, duration: frameDuration}, nil
}

func (s *FitzPDFSource) FrameCount() int {
	return s.doc.NumPage()
}

func (s *FitzPDFSource) Frame(index int) (gif.Frame, error) {
	// go-fitz documents are not safe for concurrent page rendering; open a
	// short-lived handle per page so callers may parallelize.
	doc, err := fitz.New(s.path)
	if err != nil {
		return gif.Frame{}, err
	}
	defer doc.Close()

	img, err := doc.ImageDPI(index, float64(s.dpi))
	if err != nil {
		return gif.Frame{}, err
	}
	return gif.Frame{Image: toRGBA(img), Duration: s.duration}, nil
}

func (s *FitzPDFSource) Close() error {
	return s.doc.Close()
}
