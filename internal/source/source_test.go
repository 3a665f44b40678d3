package source

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ashapiro/memeframe/internal/gif"
)

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	draw.Draw(img, img.Rect, image.NewUniform(c), image.Point{}, draw.Src)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
}

func TestImageSourceDirectory(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), color.RGBA{G: 255, A: 255})
	writePNG(t, filepath.Join(dir, "a.png"), color.RGBA{R: 255, A: 255})
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	src, err := NewImageSource(dir, 120)
	if err != nil {
		t.Fatalf("NewImageSource failed: %v", err)
	}
	defer src.Close()

	seq, err := BuildSequence(src, true)
	if err != nil {
		t.Fatalf("BuildSequence failed: %v", err)
	}

	if seq.Len() != 2 {
		t.Fatalf("Expected 2 frames, got %d", seq.Len())
	}
	// Name order: a.png before b.png.
	if c := seq.At(0).Image.RGBAAt(5, 5); c.R != 255 || c.G != 0 {
		t.Errorf("First frame should be red, got %v", c)
	}
	if c := seq.At(1).Image.RGBAAt(5, 5); c.G != 255 || c.R != 0 {
		t.Errorf("Second frame should be green, got %v", c)
	}
	if seq.At(0).Duration != 120 {
		t.Errorf("Expected duration 120, got %d", seq.At(0).Duration)
	}
	if !seq.LoopForever {
		t.Error("Loop flag should carry through")
	}
}

func TestImageSourceSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "only.png")
	writePNG(t, path, color.RGBA{B: 255, A: 255})

	src, err := NewImageSource(path, 90)
	if err != nil {
		t.Fatalf("NewImageSource failed: %v", err)
	}
	defer src.Close()

	if src.FrameCount() != 1 {
		t.Fatalf("Expected 1 frame, got %d", src.FrameCount())
	}
	frame, err := src.Frame(0)
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if frame.Duration != 90 {
		t.Errorf("Expected duration 90, got %d", frame.Duration)
	}
	if !frame.Bounds().Eq(image.Rect(0, 0, 40, 30)) {
		t.Errorf("Unexpected bounds: %v", frame.Bounds())
	}
}

func TestBuildSequenceEmptySource(t *testing.T) {
	src, err := NewImageSource(t.TempDir(), 100)
	if err != nil {
		t.Fatalf("NewImageSource failed: %v", err)
	}
	defer src.Close()

	if _, err := BuildSequence(src, false); err == nil {
		t.Error("Expected error for an empty source")
	}
}

func TestGIFSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.gif")
	frames := []gif.Frame{
		gif.SolidFrame(32, 24, image.NewUniform(color.RGBA{A: 255}), 50),
		gif.SolidFrame(32, 24, image.NewUniform(color.RGBA{R: 255, A: 255}), 70),
	}
	if err := gif.FromFrames(frames, true).Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	src, err := NewGIFSource(path)
	if err != nil {
		t.Fatalf("NewGIFSource failed: %v", err)
	}
	defer src.Close()

	seq, err := BuildSequence(src, false)
	if err != nil {
		t.Fatalf("BuildSequence failed: %v", err)
	}
	if seq.Len() != 2 {
		t.Errorf("Expected 2 frames, got %d", seq.Len())
	}
	if seq.At(1).Duration != 70 {
		t.Errorf("Expected duration 70, got %d", seq.At(1).Duration)
	}
}
