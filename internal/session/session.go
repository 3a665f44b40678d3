// Package session holds the state of one open editing session: the sequence,
// its layer set, the selected layer and active frame, and tracking mode.
// Everything the original UI kept in ambient globals is explicit here.
package session

import (
	"errors"
	"fmt"

	"github.com/ashapiro/memeframe/internal/document"
	"github.com/ashapiro/memeframe/internal/gif"
	"github.com/ashapiro/memeframe/internal/template"
	"github.com/ashapiro/memeframe/internal/tracker"
)

var (
	// ErrOutOfRange rejects frame indices outside [0, len-1].
	ErrOutOfRange = errors.New("frame index out of range")
	// ErrInvalidInput wraps malformed numeric field input. The operation is
	// aborted without mutating any state.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotTracking rejects track steps outside Tracking-Active.
	ErrNotTracking = errors.New("tracking is not active")
	// ErrTrackingLost reports a failed tracker update. The region has been
	// cleared and no keyframe was written.
	ErrTrackingLost = errors.New("tracking lost")
)

// Session is one open document being edited.
type Session struct {
	original *gif.Sequence // pristine frames, the render source of truth
	working  *gif.Sequence // composited frames shown to the viewer

	Template   *template.MemeTemplate
	selectedID string
	frameIndex int
	content    map[string]string

	track     *tracker.Tracker
	trackMode bool

	refresh func()
}

// New starts a session over a sequence. A nil or empty layer set gets a
// single default layer; the layer set invariant (at least one layer) holds
// from here on.
func New(seq *gif.Sequence, m *template.MemeTemplate) *Session {
	if m == nil || m.Len() == 0 {
		m = template.NewMemeTemplate(template.NewTextTemplate("Text 1"))
	}

	content := make(map[string]string, m.Len())
	for _, t := range m.List() {
		content[t.ID] = t.Text
	}

	return &Session{
		original:   seq,
		working:    seq.Copy(),
		Template:   m,
		selectedID: m.List()[0].ID,
		content:    content,
		track:      tracker.New(nil),
	}
}

// Open loads the GIF at path and its sidecar document, when one exists.
func Open(path string) (*Session, error) {
	seq, m, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	return New(seq, m), nil
}

// SetRefresh installs the viewer callback fired when the active frame has
// been recomposited.
func (s *Session) SetRefresh(fn func()) {
	s.refresh = fn
}

// Sequence returns the composited working sequence.
func (s *Session) Sequence() *gif.Sequence {
	return s.working
}

// Original returns the pristine sequence.
func (s *Session) Original() *gif.Sequence {
	return s.original
}

// FrameIndex returns the active frame index.
func (s *Session) FrameIndex() int {
	return s.frameIndex
}

// SetFrameIndex moves the active frame.
func (s *Session) SetFrameIndex(i int) error {
	if i < 0 || i >= s.original.Len() {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, s.original.Len())
	}
	s.frameIndex = i
	return nil
}

// SelectedID returns the id of the selected layer.
func (s *Session) SelectedID() string {
	return s.selectedID
}

// Selected returns the selected layer.
func (s *Session) Selected() *template.TextTemplate {
	t, _ := s.Template.Get(s.selectedID)
	return t
}

// Select makes the layer with the given id the edit target.
func (s *Session) Select(id string) error {
	if _, ok := s.Template.Get(id); !ok {
		return fmt.Errorf("no layer %q", id)
	}
	s.selectedID = id
	return nil
}

// SetContent updates the render content of one layer.
func (s *Session) SetContent(id, value string) error {
	if _, ok := s.Template.Get(id); !ok {
		return fmt.Errorf("no layer %q", id)
	}
	s.content[id] = value
	return nil
}

// Content returns a copy of the per-layer render content.
func (s *Session) Content() map[string]string {
	out := make(map[string]string, len(s.content))
	for k, v := range s.content {
		out[k] = v
	}
	return out
}

// Render recomposites the working sequence from the pristine frames, active
// frame first so the viewer refreshes without waiting for the full pass.
func (s *Session) Render() error {
	s.working = s.original.Copy()
	return s.Template.RenderSpiral(s.working, s.content, s.frameIndex, s.refresh)
}

// AddTemplate appends a fresh auto-named layer and selects it.
func (s *Session) AddTemplate() *template.TextTemplate {
	t := s.Template.AddNew()
	s.content[t.ID] = t.Text
	s.selectedID = t.ID
	return t
}

// RemoveSelected deletes the selected layer. Deleting the last remaining
// layer is rejected and the layer set is left unchanged.
func (s *Session) RemoveSelected() error {
	if err := s.Template.Remove(s.selectedID); err != nil {
		return err
	}
	delete(s.content, s.selectedID)
	s.selectedID = s.Template.List()[0].ID
	return nil
}

// Save writes the pristine sequence and the sidecar document to path.
func (s *Session) Save(path string) error {
	return document.Save(path, s.Template, s.original)
}
