package template

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ashapiro/memeframe/internal/gif"
	"github.com/ashapiro/memeframe/internal/keyframe"
)

func blackSequence(n, w, h int) *gif.Sequence {
	frames := make([]gif.Frame, n)
	for i := range frames {
		frames[i] = gif.SolidFrame(w, h, image.NewUniform(color.RGBA{A: 255}), 50)
	}
	return gif.FromFrames(frames, true)
}

func TestSpiralOrder(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		length int
		want   []int
	}{
		{"middle", 4, 10, []int{4, 5, 3, 6, 2, 7, 1, 8, 0, 9}},
		{"first frame", 0, 4, []int{0, 1, 2, 3}},
		{"last frame", 3, 4, []int{3, 2, 1, 0}},
		{"single frame", 0, 1, []int{0}},
		{"empty", 0, 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Spiral(tt.start, tt.length)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Spiral(%d, %d) mismatch (-want +got):\n%s", tt.start, tt.length, diff)
			}
		})
	}
}

func TestRenderFrameMutatesPixels(t *testing.T) {
	seq := blackSequence(1, 200, 120)
	layer := NewTextTemplate("Text 1")
	layer.Keyframes.Insert(keyframe.At(0, 100, 60, 40))

	if err := layer.RenderFrame(seq, 0, "HELLO"); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	// Some pixel inside the bounding box must no longer be black.
	box, err := layer.BoundingBox(keyframe.Position{X: 100, Y: 60}, 40, "HELLO")
	if err != nil {
		t.Fatalf("BoundingBox failed: %v", err)
	}

	changed := false
	img := seq.At(0).Image
	for y := box.Min.Y; y < box.Max.Y && !changed; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			if c := img.RGBAAt(x, y); c.R != 0 || c.G != 0 || c.B != 0 {
				changed = true
				break
			}
		}
	}
	if !changed {
		t.Error("RenderFrame left the frame untouched")
	}
}

func TestBoundingBoxIsCentered(t *testing.T) {
	layer := NewTextTemplate("Text 1")
	center := keyframe.Position{X: 100, Y: 60}

	box, err := layer.BoundingBox(center, 30, "centered")
	if err != nil {
		t.Fatalf("BoundingBox failed: %v", err)
	}
	if box.Dx() <= 0 || box.Dy() <= 0 {
		t.Fatalf("Degenerate box: %v", box)
	}

	// Integer division may put the true center off by one.
	cx := box.Min.X + box.Dx()/2
	cy := box.Min.Y + box.Dy()/2
	if abs(cx-center.X) > 1 || abs(cy-center.Y) > 1 {
		t.Errorf("Box %v not centered at %v", box, center)
	}
}

func TestRenderSpiralRefreshFiresOnceAfterActive(t *testing.T) {
	seq := blackSequence(6, 120, 80)
	meme := NewMemeTemplate(NewTextTemplate("Text 1"))
	content := map[string]string{"Text 1": "hi"}

	activeDrawn := false
	refreshes := 0
	refresh := func() {
		refreshes++
		// The active frame must already be composited when the hook fires.
		img := seq.At(3).Image
		for y := 0; y < img.Rect.Dy() && !activeDrawn; y++ {
			for x := 0; x < img.Rect.Dx(); x++ {
				if c := img.RGBAAt(x, y); c.R != 0 || c.G != 0 || c.B != 0 {
					activeDrawn = true
					break
				}
			}
		}
	}

	if err := meme.RenderSpiral(seq, content, 3, refresh); err != nil {
		t.Fatalf("RenderSpiral failed: %v", err)
	}

	if refreshes != 1 {
		t.Errorf("Expected exactly 1 refresh, got %d", refreshes)
	}
	if !activeDrawn {
		t.Error("Refresh fired before the active frame was composited")
	}
}

func TestRenderDrawsEveryFrame(t *testing.T) {
	seq := blackSequence(3, 200, 120)
	layer := NewTextTemplate("Text 1")
	layer.Keyframes.Insert(keyframe.At(0, 100, 60, 40))
	meme := NewMemeTemplate(layer)

	if err := meme.Render(seq, map[string]string{"Text 1": "HELLO"}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for i := 0; i < seq.Len(); i++ {
		img := seq.At(i).Image
		changed := false
		for j := 0; j < len(img.Pix); j += 4 {
			if img.Pix[j] != 0 || img.Pix[j+1] != 0 || img.Pix[j+2] != 0 {
				changed = true
				break
			}
		}
		if !changed {
			t.Errorf("Frame %d left untouched", i)
		}
	}
}

func TestRenderSkipsLayersWithoutContent(t *testing.T) {
	seq := blackSequence(2, 120, 80)
	quiet := NewTextTemplate("Quiet")
	meme := NewMemeTemplate(quiet)

	if err := meme.Render(seq, map[string]string{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	img := seq.At(0).Image
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			t.Fatal("Layer without content should not draw")
		}
	}
}

func TestAddRemoveTemplates(t *testing.T) {
	meme := NewMemeTemplate(NewTextTemplate("Text 1"))

	// Removing the only layer is a rejected no-op.
	if err := meme.Remove("Text 1"); err != ErrLastTemplate {
		t.Errorf("Expected ErrLastTemplate, got %v", err)
	}
	if meme.Len() != 1 {
		t.Fatalf("Layer count changed on rejected remove: %d", meme.Len())
	}

	meme.AddNew()
	meme.AddNew()
	meme.AddNew()

	ids := []string{}
	for _, tmpl := range meme.List() {
		ids = append(ids, tmpl.ID)
	}
	want := []string{"Text 1", "Text 2", "Text 3", "Text 4"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("Auto ids mismatch (-want +got):\n%s", diff)
	}

	if err := meme.Remove("Text 4"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if meme.Len() != 3 {
		t.Errorf("Expected 3 layers, got %d", meme.Len())
	}
}

func TestAddNewAvoidsCollisions(t *testing.T) {
	meme := NewMemeTemplate(NewTextTemplate("Text 1"), NewTextTemplate("Text 3"))

	added := meme.AddNew()
	if added.ID == "Text 1" || added.ID == "Text 3" {
		t.Errorf("AddNew reused an existing id: %s", added.ID)
	}

	again := meme.AddNew()
	if again.ID == added.ID {
		t.Errorf("AddNew produced duplicate id: %s", again.ID)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	first := NewTextTemplate("Text 1")
	first.Keyframes.Insert(keyframe.At(0, 50, 50, 30))
	first.Keyframes.Insert(keyframe.PosAt(7, 150, 50))
	first.StrokeWidth = 3
	first.BackgroundColor = "#00000080"

	second := NewTextTemplate("Text 2")
	second.Keyframes.Insert(keyframe.SizeAt(4, 60))
	second.TextColor = "#FF0000"

	meme := NewMemeTemplate(first, second)

	records := meme.Serialize()
	rebuilt := Deserialize(records)

	if diff := cmp.Diff(records, rebuilt.Serialize()); diff != "" {
		t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
	}

	layer, ok := rebuilt.Get("Text 1")
	if !ok {
		t.Fatal("Deserialize lost layer Text 1")
	}
	if layer.Text != "Text 1" {
		t.Errorf("Deserialized layer should default its content to its id, got %q", layer.Text)
	}
	if layer.Keyframes.Len() != 2 {
		t.Errorf("Expected 2 keyframes, got %d", layer.Keyframes.Len())
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
