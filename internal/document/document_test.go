package document

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ashapiro/memeframe/internal/gif"
	"github.com/ashapiro/memeframe/internal/keyframe"
	"github.com/ashapiro/memeframe/internal/template"
)

func testSequence(n int) *gif.Sequence {
	frames := make([]gif.Frame, n)
	for i := range frames {
		shade := uint8(40 * (i + 1))
		frames[i] = gif.SolidFrame(48, 32, image.NewUniform(color.RGBA{R: shade, G: shade, B: shade, A: 255}), 80)
	}
	return gif.FromFrames(frames, true)
}

func testTemplate() *template.MemeTemplate {
	first := template.NewTextTemplate("Text 1")
	first.Keyframes.Insert(keyframe.At(0, 24, 16, 20))
	first.Keyframes.Insert(keyframe.PosAt(2, 40, 10))

	second := template.NewTextTemplate("Text 2")
	second.TextColor = "#FF0000"
	second.Keyframes.Insert(keyframe.SizeAt(1, 30))

	return template.NewMemeTemplate(first, second)
}

func TestSidecarPath(t *testing.T) {
	tests := []struct {
		gifPath string
		want    string
	}{
		{"clip.gif", "clip.yaml"},
		{"/tmp/out/clip.gif", "/tmp/out/clip.yaml"},
		{"noext", "noext.yaml"},
	}
	for _, tt := range tests {
		if got := SidecarPath(tt.gifPath); got != tt.want {
			t.Errorf("SidecarPath(%q) = %q, want %q", tt.gifPath, got, tt.want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	gifPath := filepath.Join(dir, "clip.gif")

	seq := testSequence(3)
	m := testTemplate()

	if err := Save(gifPath, m, seq); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(SidecarPath(gifPath)); err != nil {
		t.Fatalf("Sidecar missing: %v", err)
	}

	loadedSeq, loaded, err := Load(gifPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load dropped the sidecar layer set")
	}

	if loadedSeq.Len() != seq.Len() {
		t.Errorf("Frame count: expected %d, got %d", seq.Len(), loadedSeq.Len())
	}
	if diff := cmp.Diff(m.Serialize(), loaded.Serialize()); diff != "" {
		t.Errorf("Layer set mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWithoutSidecar(t *testing.T) {
	dir := t.TempDir()
	gifPath := filepath.Join(dir, "bare.gif")

	if err := testSequence(2).Save(gifPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	seq, m, err := Load(gifPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m != nil {
		t.Errorf("Expected nil layer set without a sidecar, got %d layers", m.Len())
	}
	if seq.Len() != 2 {
		t.Errorf("Expected 2 frames, got %d", seq.Len())
	}
}

func TestLoadCorruptSidecar(t *testing.T) {
	dir := t.TempDir()
	gifPath := filepath.Join(dir, "broken.gif")

	if err := testSequence(1).Save(gifPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := os.WriteFile(SidecarPath(gifPath), []byte("{not yaml"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, _, err := Load(gifPath); err == nil {
		t.Error("Expected error for a corrupt sidecar")
	}
}
